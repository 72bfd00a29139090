package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/paramreg/registry/internal/constants"
	"github.com/paramreg/registry/internal/dto"
	"github.com/paramreg/registry/internal/middleware"
	"github.com/paramreg/registry/internal/service"
	ctxutil "github.com/paramreg/registry/pkg/context"
	"github.com/paramreg/registry/pkg/logger"
	"github.com/paramreg/registry/pkg/pagination"
	"github.com/paramreg/registry/pkg/validation"
)

type ParameterHandler struct {
	parameterService *service.ParameterService
}

func NewParameterHandler(service *service.ParameterService) *ParameterHandler {
	return &ParameterHandler{parameterService: service}
}

func (h *ParameterHandler) Create(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "CreateParameter")

	req, ok := middleware.RequestBody[dto.ParameterRequest](c)
	if !ok {
		respondError(c, http.StatusBadRequest, constants.MsgBadRequest, nil)
		return
	}

	logger.InfoWithContext(ctx, "Create parameter request").
		String("name", req.Name).
		String("category", req.Category).
		Log()

	parameter, err := h.parameterService.Create(ctx, *req)
	if err != nil {
		respondDomainError(ctx, c, err, "Failed to create parameter")
		return
	}

	respond(c, http.StatusCreated, dto.NewParameterResponse(parameter))
}

// FindAll lists parameters filtered by ?name= and ?category=<slug>.
func (h *ParameterHandler) FindAll(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "FindAllParameters")

	params, ok := bindPagination(ctx, c)
	if !ok {
		return
	}

	var filter dto.ParameterFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		logger.WarnWithContext(ctx, "Invalid parameter filter").Err(err).Log()
		respondError(c, http.StatusBadRequest, constants.MsgBadRequest, validation.Messages(err))
		return
	}

	envelope, err := h.parameterService.FindAll(ctx, params, filter)
	if err != nil {
		respondDomainError(ctx, c, err, "Failed to list parameters")
		return
	}

	logger.DebugWithContext(ctx, "Parameters listed").
		Int("page", params.Page).
		Int("page_size", params.PageSize).
		String("name", filter.Name).
		String("category", filter.Category).
		Int64("total", envelope.TotalCount).
		Log()

	respondList(c, pagination.Envelope[dto.ParameterResponse]{
		TotalCount:  envelope.TotalCount,
		PageCount:   envelope.PageCount,
		CurrentPage: envelope.CurrentPage,
		PageSize:    envelope.PageSize,
		Data:        dto.NewParameterResponses(envelope.Data),
	})
}

func (h *ParameterHandler) FindBySlug(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "FindParameterBySlug")

	slug, ok := bindSlug(ctx, c)
	if !ok {
		return
	}

	parameter, err := h.parameterService.FindBySlug(ctx, slug)
	if err != nil {
		respondDomainError(ctx, c, err, "Failed to fetch parameter")
		return
	}

	respond(c, http.StatusOK, dto.NewParameterResponse(parameter))
}

func (h *ParameterHandler) FindByID(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "FindParameterByID")

	id, ok := bindID(ctx, c)
	if !ok {
		return
	}

	parameter, err := h.parameterService.FindByID(ctx, id)
	if err != nil {
		respondDomainError(ctx, c, err, "Failed to fetch parameter")
		return
	}

	respond(c, http.StatusOK, dto.NewParameterResponse(parameter))
}

func (h *ParameterHandler) Update(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "UpdateParameter")

	id, ok := bindID(ctx, c)
	if !ok {
		return
	}

	req, ok := middleware.RequestBody[dto.ParameterUpdateRequest](c)
	if !ok || req.IsEmpty() {
		respondError(c, http.StatusBadRequest, constants.MsgEmptyUpdate, nil)
		return
	}

	parameter, err := h.parameterService.Update(ctx, id, *req)
	if err != nil {
		respondDomainError(ctx, c, err, "Failed to update parameter")
		return
	}

	respond(c, http.StatusOK, dto.NewParameterResponse(parameter))
}

func (h *ParameterHandler) Delete(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "DeleteParameter")

	id, ok := bindID(ctx, c)
	if !ok {
		return
	}

	parameter, err := h.parameterService.Delete(ctx, id)
	if err != nil {
		respondDomainError(ctx, c, err, "Failed to delete parameter")
		return
	}

	respond(c, http.StatusOK, dto.NewParameterResponse(parameter))
}
