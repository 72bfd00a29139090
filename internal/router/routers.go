package router

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/paramreg/registry/config"
	"github.com/paramreg/registry/internal/constants"
	"github.com/paramreg/registry/internal/handler"
	"github.com/paramreg/registry/internal/middleware"
	"github.com/paramreg/registry/pkg/logger"
	"github.com/paramreg/registry/pkg/validation"
	"go.uber.org/zap"
)

var bindingOnce sync.Once

type Router struct {
	categoryHandler  *handler.CategoryHandler
	parameterHandler *handler.ParameterHandler
	healthHandler    *handler.HealthHandler

	limiter middleware.WindowCounter
	Config  *config.Config
}

// NewRouter wires the handlers. A nil limiter falls back to an in-process
// counter.
func NewRouter(
	category *handler.CategoryHandler,
	parameter *handler.ParameterHandler,
	health *handler.HealthHandler,
	limiter middleware.WindowCounter,
	config *config.Config,
) *Router {
	if limiter == nil {
		limiter = middleware.NewMemoryCounter()
	}
	return &Router{
		categoryHandler:  category,
		parameterHandler: parameter,
		healthHandler:    health,
		limiter:          limiter,
		Config:           config,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	bindingOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		if err := validation.Register(v); err != nil {
			logger.GetLogger().Error("Failed to register binding validation", zap.Error(err))
		}
	})

	router := gin.New()

	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.ContextMiddleware(r.Config.App.Timeout))
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORS())

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, constants.BuildErrorResponse(
			http.StatusNotFound,
			constants.MsgNotFound,
			nil,
			c.Request.URL.Path,
			time.Now(),
		))
	})

	api := router.Group("/api")
	{
		api.GET("/health", r.healthHandler.HealthCheck)

		v1 := api.Group("/v1")
		{
			if r.Config.RateLimit.Enabled {
				v1.Use(middleware.RateLimit(r.limiter, r.Config.RateLimit.Request, r.Config.RateLimitWindow()))
			}

			r.categoryRoutes(v1)
			r.parameterRoutes(v1)
		}
	}

	return router
}
