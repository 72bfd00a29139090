package cli

import (
	"context"
	"fmt"

	"github.com/paramreg/registry/config"
	"github.com/paramreg/registry/internal/repository"
	"github.com/paramreg/registry/internal/service"
	"github.com/paramreg/registry/pkg/database"
	"github.com/paramreg/registry/pkg/logger"
	"go.uber.org/zap"
)

type services struct {
	categories *service.CategoryService
	parameters *service.ParameterService
}

// bootstrap loads the configuration, starts the logger and opens the store.
// The caller owns the returned store.
func bootstrap(ctx context.Context) (*config.Config, *database.Store, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.InitLogger(cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	store, err := database.Open(ctx, cfg)
	if err != nil {
		logger.GetLogger().Error("Failed to open database",
			zap.String("driver", cfg.Database.Driver),
			zap.Error(err),
		)
		return nil, nil, err
	}

	logger.GetLogger().Info("Database connected",
		zap.String("driver", store.Driver),
	)

	return cfg, store, nil
}

func newServices(store *database.Store) services {
	var (
		categoryRepo  repository.CategoryRepository
		parameterRepo repository.ParameterRepository
	)

	if store.Mongo != nil {
		categoryRepo = repository.NewCategoryMongoRepository(store.Mongo)
		parameterRepo = repository.NewParameterMongoRepository(store.Mongo)
	} else {
		categoryRepo = repository.NewCategoryGormRepository(store.Gorm)
		parameterRepo = repository.NewParameterGormRepository(store.Gorm)
	}

	categories := service.NewCategoryService(categoryRepo)
	return services{
		categories: categories,
		parameters: service.NewParameterService(parameterRepo, categories),
	}
}
