package cli

import (
	"context"
	"fmt"

	"github.com/paramreg/registry/internal/dto"
	apperrors "github.com/paramreg/registry/internal/errors"
	"github.com/paramreg/registry/internal/model"
	"github.com/paramreg/registry/internal/service"
	"github.com/paramreg/registry/pkg/database"
	"github.com/paramreg/registry/pkg/logger"
	"github.com/paramreg/registry/pkg/pagination"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load categories and parameters from a YAML file",
	Long:  "Creates the categories and parameters listed in the fixtures file. Entries that already exist are skipped.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		path, _ := cmd.Flags().GetString("file")
		fixtures, err := database.LoadFixtures(path)
		if err != nil {
			return err
		}

		_, store, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer logger.Sync()
		defer store.Close(context.Background())

		if err := store.Migrate(ctx); err != nil {
			return err
		}

		svc := newServices(store)
		report, err := seedFixtures(ctx, svc.categories, svc.parameters, fixtures)
		if err != nil {
			logger.GetLogger().Error("Seeding failed", zap.Error(err))
			return err
		}

		logger.GetLogger().Info("Database seeded",
			zap.Int("categories_created", report.CategoriesCreated),
			zap.Int("categories_skipped", report.CategoriesSkipped),
			zap.Int("parameters_created", report.ParametersCreated),
			zap.Int("parameters_skipped", report.ParametersSkipped),
		)
		return nil
	},
}

type seedReport struct {
	CategoriesCreated int
	CategoriesSkipped int
	ParametersCreated int
	ParametersSkipped int
}

// seedFixtures goes through the services so seeded records get the same
// slugs and validation as API-created ones.
func seedFixtures(
	ctx context.Context,
	categories *service.CategoryService,
	parameters *service.ParameterService,
	fixtures *database.Fixtures,
) (seedReport, error) {
	var report seedReport

	for _, cf := range fixtures.Categories {
		category, created, err := ensureCategory(ctx, categories, cf)
		if err != nil {
			return report, err
		}
		if created {
			report.CategoriesCreated++
		} else {
			report.CategoriesSkipped++
		}

		for _, pf := range cf.Parameters {
			existing, err := parameters.FindAll(ctx, pagination.Params{Page: 1, PageSize: 1}, dto.ParameterFilter{
				Name:     pf.Name,
				Category: category.Slug,
			})
			if err != nil {
				return report, err
			}
			if existing.TotalCount > 0 {
				report.ParametersSkipped++
				continue
			}

			_, err = parameters.Create(ctx, dto.ParameterRequest{
				Default:     pf.Default,
				Name:        pf.Name,
				Category:    category.Slug,
				Description: pf.Description,
			})
			if err != nil {
				return report, fmt.Errorf("parameter %q of %q: %w", pf.Name, cf.Name, err)
			}
			report.ParametersCreated++
		}
	}

	return report, nil
}

func ensureCategory(ctx context.Context, categories *service.CategoryService, cf database.CategoryFixture) (*model.Category, bool, error) {
	category, err := categories.Create(ctx, dto.CategoryRequest{
		Name:        cf.Name,
		Description: cf.Description,
	})
	if err == nil {
		return category, true, nil
	}
	if !apperrors.IsDuplicate(err) {
		return nil, false, fmt.Errorf("category %q: %w", cf.Name, err)
	}

	category, err = categories.FindBySlug(ctx, service.Slugify(cf.Name))
	if err != nil {
		return nil, false, fmt.Errorf("category %q: %w", cf.Name, err)
	}
	return category, false, nil
}

func init() {
	seedCmd.Flags().StringP("file", "f", "fixtures.yaml", "YAML fixtures file")
	rootCmd.AddCommand(seedCmd)
}
