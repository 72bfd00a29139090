package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/paramreg/registry/internal/constants"
	"github.com/paramreg/registry/pkg/circuit"
	ctxutil "github.com/paramreg/registry/pkg/context"
	"github.com/paramreg/registry/pkg/logger"
	"github.com/paramreg/registry/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(mw...)
	return engine
}

func serve(engine *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestMemoryCounterFixedWindow(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	counter := NewMemoryCounter()
	counter.now = func() time.Time { return now }

	count, ttl, err := counter.Increment(context.Background(), "k", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, time.Minute, ttl)

	now = now.Add(20 * time.Second)
	count, ttl, _ = counter.Increment(context.Background(), "k", time.Minute)
	assert.Equal(t, int64(2), count)
	assert.Equal(t, 40*time.Second, ttl)

	count, _, _ = counter.Increment(context.Background(), "other", time.Minute)
	assert.Equal(t, int64(1), count)

	now = now.Add(40 * time.Second)
	count, ttl, _ = counter.Increment(context.Background(), "k", time.Minute)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, time.Minute, ttl)
}

type failingCounter struct{}

func (failingCounter) Increment(context.Context, string, time.Duration) (int64, time.Duration, error) {
	return 0, 0, errors.New("connection refused")
}

func TestRateLimitFailsOpen(t *testing.T) {
	engine := newEngine(RateLimit(failingCounter{}, 1, time.Minute))
	engine.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		w := serve(engine, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimitHeaders(t *testing.T) {
	engine := newEngine(RateLimit(NewMemoryCounter(), 3, time.Minute))
	engine.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(engine, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "3", w.Header().Get(constants.HeaderRateLimit))
	assert.Equal(t, "2", w.Header().Get(constants.HeaderRateLimitLeft))
}

func TestContextMiddlewareRequestID(t *testing.T) {
	var seen string
	engine := newEngine(ContextMiddleware(time.Second))
	engine.GET("/ping", func(c *gin.Context) {
		seen = ctxutil.GetRequestID(c.Request.Context())
		c.Status(http.StatusOK)
	})

	given := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(constants.HeaderXRequestID, given)
	w := serve(engine, req)
	assert.Equal(t, given, seen)
	assert.Equal(t, given, w.Header().Get(constants.HeaderXRequestID))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(constants.HeaderXRequestID, "not-an-id")
	w = serve(engine, req)
	_, err := uuid.Parse(seen)
	assert.NoError(t, err)
	assert.NotEqual(t, "not-an-id", w.Header().Get(constants.HeaderXRequestID))
}

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	previous := logger.GetLogger()
	logger.SetLogger(zap.New(core))
	t.Cleanup(func() { logger.SetLogger(previous) })
	return logs
}

func TestLoggingMiddlewareReadsRequestContext(t *testing.T) {
	logs := observeLogs(t)
	engine := newEngine(LoggingMiddleware(), ContextMiddleware(time.Second))
	engine.GET("/ping", func(c *gin.Context) {
		assert.Equal(t, "registry-test", ctxutil.GetUserAgent(c.Request.Context()))
		assert.Equal(t, "/ping", ctxutil.GetPath(c.Request.Context()))
		assert.False(t, ctxutil.GetStartTime(c.Request.Context()).IsZero())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping?page=2", nil)
	req.Header.Set("User-Agent", "registry-test")
	serve(engine, req)

	entries := logs.FilterMessage("Request completed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/ping", fields["path"])
	assert.Equal(t, "page=2", fields["query"])
	assert.Equal(t, "registry-test", fields["user_agent"])
	assert.NotEmpty(t, fields["request_id"])
	assert.Contains(t, fields, "duration")
}

func TestCORSPreflight(t *testing.T) {
	engine := newEngine(CORS())
	engine.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(engine, httptest.NewRequest(http.MethodOptions, "/ping", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get(constants.HeaderExposeHeaders), pagination.HeaderTotalCount)
}

func TestRecoveryMiddleware(t *testing.T) {
	logs := observeLogs(t)
	engine := newEngine(ContextMiddleware(time.Second), RecoveryMiddleware(), LoggingMiddleware())
	engine.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := serve(engine, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), constants.MsgInternalError)
	assert.Contains(t, w.Body.String(), `"path":"/boom"`)

	entries := logs.FilterMessage("Panic recovered").All()
	require.Len(t, entries, 1)
	request, ok := entries[0].ContextMap()["request"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "/boom", request["path"])
	assert.NotEmpty(t, request["request_id"])
}

type sampleBody struct {
	Name string `json:"name" validate:"required,min=3"`
}

func TestValidateRequestBody(t *testing.T) {
	engine := newEngine()
	engine.POST("/items", ValidateRequestBody(func() interface{} { return &sampleBody{} }), func(c *gin.Context) {
		body, ok := RequestBody[sampleBody](c)
		require.True(t, ok)
		c.String(http.StatusOK, body.Name)
	})

	post := func(body string) *httptest.ResponseRecorder {
		return serve(engine, httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(body)))
	}

	w := post(`{"name":"valid"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "valid", w.Body.String())

	w = post(`{"name":"ab"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "name must be at least 3 characters long")

	w = post(`not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Malformed JSON body")

	w = post(``)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRequestBodyMissing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := RequestBody[sampleBody](c)
	assert.False(t, ok)
}

type scriptedCounter struct {
	calls int
	err   error
}

func (s *scriptedCounter) Increment(context.Context, string, time.Duration) (int64, time.Duration, error) {
	s.calls++
	if s.err != nil {
		return 0, 0, s.err
	}
	return 100, time.Minute, nil
}

func TestFallbackCounter(t *testing.T) {
	primary := &scriptedCounter{err: errors.New("redis down")}
	breaker := circuit.NewBreaker("ratelimit", circuit.Config{
		Threshold:        2,
		Timeout:          time.Hour,
		SuccessThreshold: 1,
		MaxHalfOpen:      1,
	}, nil)
	counter := NewFallbackCounter(primary, NewMemoryCounter(), breaker)

	for want := int64(1); want <= 3; want++ {
		count, _, err := counter.Increment(context.Background(), "k", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, want, count)
	}

	// the open breaker keeps further calls off the primary
	assert.Equal(t, 2, primary.calls)
	assert.True(t, breaker.IsOpen())
}

func TestFallbackCounterUsesPrimary(t *testing.T) {
	primary := &scriptedCounter{}
	counter := NewFallbackCounter(primary, NewMemoryCounter(), circuit.NewBreaker("ratelimit", circuit.DefaultConfig(), nil))

	count, ttl, err := counter.Increment(context.Background(), "k", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(100), count)
	assert.Equal(t, time.Minute, ttl)
}
