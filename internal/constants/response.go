package constants

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Standard Response Field Keys
const (
	ResponseFieldMessage    = "message"
	ResponseFieldData       = "data"
	ResponseFieldErrors     = "errors"
	ResponseFieldStatusCode = "statusCode"
	ResponseFieldTimestamp  = "timestamp"
	ResponseFieldPath       = "path"
)

// BuildSuccessResponse wraps data as {message: "<METHOD> success", data, errors: {}}.
func BuildSuccessResponse(method string, data any) gin.H {
	return gin.H{
		ResponseFieldMessage: method + MsgSuccessSuffix,
		ResponseFieldData:    data,
		ResponseFieldErrors:  gin.H{},
	}
}

// BuildErrorResponse is the uniform failure body.
func BuildErrorResponse(status int, message string, details []string, path string, at time.Time) gin.H {
	if details == nil {
		details = []string{}
	}
	if message == "" {
		message = http.StatusText(status)
	}
	return gin.H{
		ResponseFieldMessage:    message,
		ResponseFieldErrors:     details,
		ResponseFieldStatusCode: status,
		ResponseFieldTimestamp:  at.UTC().Format(time.RFC3339),
		ResponseFieldPath:       path,
	}
}
