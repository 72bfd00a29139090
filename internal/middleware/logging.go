package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/paramreg/registry/internal/constants"
	ctxutil "github.com/paramreg/registry/pkg/context"
	"github.com/paramreg/registry/pkg/logger"
	"go.uber.org/zap"
)

// SlowRequestThreshold marks requests logged at warn level
const SlowRequestThreshold = 2 * time.Second

// LoggingMiddleware logs one line per request, at a level chosen by status
// code and latency.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		// timed-out requests are still logged
		ctx := context.WithoutCancel(c.Request.Context())

		latency := ctxutil.GetDuration(ctx)
		if ctxutil.GetStartTime(ctx).IsZero() {
			latency = time.Since(start)
		}
		path := ctxutil.GetPath(ctx)
		if path == "" {
			path = c.Request.URL.Path
		}

		var entry *logger.ContextLogBuilder
		switch {
		case status >= http.StatusInternalServerError:
			entry = logger.ErrorWithContext(ctx, "Server error")
		case status >= http.StatusBadRequest:
			entry = logger.WarnWithContext(ctx, "Client error")
		case latency > SlowRequestThreshold:
			entry = logger.WarnWithContext(ctx, "Slow request")
		default:
			entry = logger.InfoWithContext(ctx, "Request completed")
		}

		entry.Method(c.Request.Method).
			Path(path).
			String("query", c.Request.URL.RawQuery).
			String("user_agent", ctxutil.GetUserAgent(ctx)).
			StatusCode(status).
			Int("response_size", c.Writer.Size()).
			Duration(latency)

		if errs := c.Errors.ByType(gin.ErrorTypeAny); len(errs) > 0 {
			entry.String("errors", errs.String())
		}

		entry.Log()
	}
}

// RecoveryMiddleware recovers from panics and logs them
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.LogPanic(recovered,
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Any("request", ctxutil.ContextToMap(c.Request.Context())),
		)

		c.AbortWithStatusJSON(http.StatusInternalServerError, constants.BuildErrorResponse(
			http.StatusInternalServerError,
			constants.MsgInternalError,
			nil,
			c.Request.URL.Path,
			time.Now(),
		))
	})
}
