package router

import (
	"github.com/gin-gonic/gin"
	"github.com/paramreg/registry/internal/dto"
	"github.com/paramreg/registry/internal/middleware"
)

func (r *Router) parameterRoutes(version *gin.RouterGroup) {
	parameters := version.Group("/parameters")
	{
		parameters.POST("", middleware.ValidateRequestBody(func() interface{} {
			return &dto.ParameterRequest{}
		}), r.parameterHandler.Create)

		// ?page=&page_size=&name=&category=
		parameters.GET("", r.parameterHandler.FindAll)
		parameters.GET("/slug/:slug", r.parameterHandler.FindBySlug)
		parameters.GET("/:id", r.parameterHandler.FindByID)

		parameters.PATCH("/:id", middleware.ValidateRequestBody(func() interface{} {
			return &dto.ParameterUpdateRequest{}
		}), r.parameterHandler.Update)

		parameters.DELETE("/:id", r.parameterHandler.Delete)
	}
}
