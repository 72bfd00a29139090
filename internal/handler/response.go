package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/paramreg/registry/internal/constants"
	"github.com/paramreg/registry/internal/dto"
	apperrors "github.com/paramreg/registry/internal/errors"
	"github.com/paramreg/registry/pkg/logger"
	"github.com/paramreg/registry/pkg/pagination"
	"github.com/paramreg/registry/pkg/validation"
)

func respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, constants.BuildSuccessResponse(c.Request.Method, data))
}

func respondList[T any](c *gin.Context, envelope pagination.Envelope[T]) {
	for name, value := range envelope.Headers() {
		c.Header(name, value)
	}
	respond(c, http.StatusOK, envelope)
}

func respondError(c *gin.Context, status int, message string, details []string) {
	c.AbortWithStatusJSON(status, constants.BuildErrorResponse(
		status,
		message,
		details,
		c.Request.URL.Path,
		time.Now(),
	))
}

// respondDomainError writes err with the status its kind maps to. Internal
// failures never expose their text.
func respondDomainError(ctx context.Context, c *gin.Context, err error, message string) {
	status := apperrors.ToHTTPStatus(err)

	entry := logger.WarnWithContext(ctx, message)
	if status >= http.StatusInternalServerError {
		entry = logger.ErrorWithContext(ctx, message)
	}
	entry.Int("http_status", status).Err(err).Log()

	if status >= http.StatusInternalServerError {
		respondError(c, status, constants.MsgInternalError, nil)
		return
	}
	respondError(c, status, apperrors.GetErrorMessage(err), apperrors.GetErrorDetails(err))
}

// bindID reads the :id path parameter, answering 400 when it is not a UUID.
func bindID(ctx context.Context, c *gin.Context) (string, bool) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		logger.WarnWithContext(ctx, "Invalid id format").
			String("raw_id", c.Param("id")).
			Err(err).
			Log()
		respondError(c, http.StatusBadRequest, constants.MsgInvalidID, validation.Messages(err))
		return "", false
	}
	return param.ID, true
}

func bindSlug(ctx context.Context, c *gin.Context) (string, bool) {
	var param dto.SlugParam
	if err := c.ShouldBindUri(&param); err != nil {
		logger.WarnWithContext(ctx, "Invalid slug").
			String("raw_slug", c.Param("slug")).
			Err(err).
			Log()
		respondError(c, http.StatusBadRequest, constants.MsgInvalidSlug, validation.Messages(err))
		return "", false
	}
	return param.Slug, true
}

func bindPagination(ctx context.Context, c *gin.Context) (pagination.Params, bool) {
	var params pagination.Params
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.WarnWithContext(ctx, "Invalid pagination query").
			String("query", c.Request.URL.RawQuery).
			Err(err).
			Log()
		respondError(c, http.StatusBadRequest, constants.MsgBadRequest, validation.Messages(err))
		return pagination.Params{}, false
	}
	return params.Normalize(), true
}
