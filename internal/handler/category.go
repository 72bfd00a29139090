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
)

type CategoryHandler struct {
	categoryService *service.CategoryService
}

func NewCategoryHandler(service *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: service}
}

// Create expects a body validated by middleware.ValidateRequestBody.
func (h *CategoryHandler) Create(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "CreateCategory")

	req, ok := middleware.RequestBody[dto.CategoryRequest](c)
	if !ok {
		respondError(c, http.StatusBadRequest, constants.MsgBadRequest, nil)
		return
	}

	logger.InfoWithContext(ctx, "Create category request").
		String("name", req.Name).
		Log()

	category, err := h.categoryService.Create(ctx, *req)
	if err != nil {
		respondDomainError(ctx, c, err, "Failed to create category")
		return
	}

	respond(c, http.StatusCreated, dto.NewCategoryResponse(category))
}

func (h *CategoryHandler) FindAll(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "FindAllCategories")

	params, ok := bindPagination(ctx, c)
	if !ok {
		return
	}

	envelope, err := h.categoryService.FindAll(ctx, params)
	if err != nil {
		respondDomainError(ctx, c, err, "Failed to list categories")
		return
	}

	logger.DebugWithContext(ctx, "Categories listed").
		Int("page", params.Page).
		Int("page_size", params.PageSize).
		Int64("total", envelope.TotalCount).
		Int("returned_count", len(envelope.Data)).
		Log()

	respondList(c, pagination.Envelope[dto.CategoryResponse]{
		TotalCount:  envelope.TotalCount,
		PageCount:   envelope.PageCount,
		CurrentPage: envelope.CurrentPage,
		PageSize:    envelope.PageSize,
		Data:        dto.NewCategoryResponses(envelope.Data),
	})
}

func (h *CategoryHandler) FindByID(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "FindCategoryByID")

	id, ok := bindID(ctx, c)
	if !ok {
		return
	}

	category, err := h.categoryService.FindByID(ctx, id)
	if err != nil {
		respondDomainError(ctx, c, err, "Failed to fetch category")
		return
	}

	respond(c, http.StatusOK, dto.NewCategoryResponse(category))
}

func (h *CategoryHandler) FindBySlug(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "FindCategoryBySlug")

	slug := c.Param("slug")
	category, err := h.categoryService.FindBySlug(ctx, slug)
	if err != nil {
		respondDomainError(ctx, c, err, "Failed to fetch category")
		return
	}

	respond(c, http.StatusOK, dto.NewCategoryResponse(category))
}

func (h *CategoryHandler) Update(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "UpdateCategory")

	id, ok := bindID(ctx, c)
	if !ok {
		return
	}

	req, ok := middleware.RequestBody[dto.CategoryUpdateRequest](c)
	if !ok || req.IsEmpty() {
		respondError(c, http.StatusBadRequest, constants.MsgEmptyUpdate, nil)
		return
	}

	category, err := h.categoryService.Update(ctx, id, *req)
	if err != nil {
		respondDomainError(ctx, c, err, "Failed to update category")
		return
	}

	respond(c, http.StatusOK, dto.NewCategoryResponse(category))
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "handler", "DeleteCategory")

	id, ok := bindID(ctx, c)
	if !ok {
		return
	}

	category, err := h.categoryService.Delete(ctx, id)
	if err != nil {
		respondDomainError(ctx, c, err, "Failed to delete category")
		return
	}

	logger.InfoWithContext(ctx, "Category delete request served").
		String("category_id", id).
		Log()

	respond(c, http.StatusOK, dto.NewCategoryResponse(category))
}
