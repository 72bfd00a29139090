package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/paramreg/registry/internal/constants"
	"github.com/paramreg/registry/pkg/logger"
	"github.com/paramreg/registry/pkg/validation"
)

// RequestBodyKey holds the validated body in the gin context
const RequestBodyKey = "validated_body"

// ValidateRequestBody decodes the JSON body into the value built by factory
// and validates it. Valid bodies are stored under RequestBodyKey.
func ValidateRequestBody(factory func() interface{}) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		path := c.Request.URL.Path

		var bodyBytes []byte
		if c.Request.Body != nil {
			var err error
			bodyBytes, err = io.ReadAll(c.Request.Body)
			if err != nil {
				logger.ErrorWithContext(ctx, "Failed to read request body").Path(path).Err(err).Log()
				abortBadRequest(c, constants.MsgBadRequest, []string{err.Error()})
				return
			}
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		request := factory()
		if err := json.Unmarshal(bodyBytes, request); err != nil {
			logger.WarnWithContext(ctx, "Malformed JSON body").
				Path(path).
				Int("body_size", len(bodyBytes)).
				Err(err).
				Log()
			abortBadRequest(c, "Malformed JSON body", []string{err.Error()})
			return
		}

		if messages := validation.Struct(request); len(messages) > 0 {
			logger.WarnWithContext(ctx, "Request validation failed").
				Path(path).
				Any("validation_errors", messages).
				Log()
			abortBadRequest(c, constants.MsgBadRequest, messages)
			return
		}

		c.Set(RequestBodyKey, request)
		c.Next()
	}
}

// RequestBody returns the body stored by ValidateRequestBody.
func RequestBody[T any](c *gin.Context) (*T, bool) {
	v, ok := c.Get(RequestBodyKey)
	if !ok {
		return nil, false
	}
	body, ok := v.(*T)
	return body, ok
}

func abortBadRequest(c *gin.Context, message string, details []string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, constants.BuildErrorResponse(
		http.StatusBadRequest,
		message,
		details,
		c.Request.URL.Path,
		time.Now(),
	))
}
