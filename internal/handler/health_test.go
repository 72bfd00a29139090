package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/paramreg/registry/internal/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct {
	err     error
	enabled bool
}

func (s stubPinger) Ping(context.Context) error { return s.err }
func (s stubPinger) IsEnabled() bool            { return s.enabled }

func runHealth(t *testing.T, h *HealthHandler) (int, HealthCheckResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	h.HealthCheck(c)

	var body HealthCheckResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestHealthCheckHealthy(t *testing.T) {
	code, body := runHealth(t, NewHealthHandler(stubPinger{}, stubPinger{enabled: true}))

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, constants.AppVersion, body.Version)
	assert.Equal(t, "healthy", body.Checks["redis"].Status)
}

func TestHealthCheckDatabaseDown(t *testing.T) {
	code, body := runHealth(t, NewHealthHandler(stubPinger{err: errors.New("dial tcp: refused")}, nil))

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "unhealthy", body.Status)
	assert.Equal(t, "disabled", body.Checks["redis"].Status)
}

func TestHealthCheckRedisDownStaysHealthy(t *testing.T) {
	code, body := runHealth(t, NewHealthHandler(stubPinger{}, stubPinger{enabled: true, err: errors.New("timeout")}))

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "unhealthy", body.Checks["redis"].Status)
}

func TestHealthCheckWithoutDatabase(t *testing.T) {
	code, body := runHealth(t, NewHealthHandler(nil, nil))

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "Database connection not initialized", body.Checks["database"].Message)
}
