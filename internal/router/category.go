package router

import (
	"github.com/gin-gonic/gin"
	"github.com/paramreg/registry/internal/dto"
	"github.com/paramreg/registry/internal/middleware"
)

func (r *Router) categoryRoutes(version *gin.RouterGroup) {
	categories := version.Group("/categories")
	{
		categories.POST("", middleware.ValidateRequestBody(func() interface{} {
			return &dto.CategoryRequest{}
		}), r.categoryHandler.Create)

		categories.GET("", r.categoryHandler.FindAll)
		categories.GET("/slug/:slug", r.categoryHandler.FindBySlug)
		categories.GET("/:id", r.categoryHandler.FindByID)

		// name and description only; the slug never changes
		categories.PATCH("/:id", middleware.ValidateRequestBody(func() interface{} {
			return &dto.CategoryUpdateRequest{}
		}), r.categoryHandler.Update)

		categories.DELETE("/:id", r.categoryHandler.Delete)
	}
}
