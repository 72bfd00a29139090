package repository

import (
	"context"
	"strings"
	"time"

	"github.com/paramreg/registry/internal/model"
	"github.com/paramreg/registry/pkg/logger"
	"github.com/paramreg/registry/pkg/pagination"
	"gorm.io/gorm"
)

type ParameterGormRepository struct {
	db *gorm.DB
}

func NewParameterGormRepository(db *gorm.DB) *ParameterGormRepository {
	return &ParameterGormRepository{db: db}
}

func (r *ParameterGormRepository) active(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&model.Parameter{}).Where("delete_at IS NULL")
}

func (r *ParameterGormRepository) Create(ctx context.Context, parameter *model.Parameter) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	err := translateGormError(r.db.WithContext(ctx).Create(parameter).Error)

	if err != nil {
		// duplicate slugs are retried by the caller, keep them out of the error log
		if err == ErrDuplicateKey {
			logger.WarnWithContext(ctx, "Repository: Parameter slug already taken").
				String("slug", parameter.Slug).
				Log()
		} else {
			logger.ErrorWithContext(ctx, "Repository: Failed to create parameter").
				String("slug", parameter.Slug).
				Duration(time.Since(start)).
				Err(err).
				Log()
		}
		return err
	}

	logger.DebugWithContext(ctx, "Repository: Parameter created").
		String("parameter_id", parameter.ID).
		String("slug", parameter.Slug).
		Duration(time.Since(start)).
		Log()
	return nil
}

func (r *ParameterGormRepository) FindByID(ctx context.Context, id string, includeDeleted bool) (*model.Parameter, error) {
	query := r.db.WithContext(ctx).Where("id = ?", id)
	if !includeDeleted {
		query = query.Where("delete_at IS NULL")
	}

	var parameter model.Parameter
	if err := query.First(&parameter).Error; err != nil {
		return nil, translateGormError(err)
	}
	return &parameter, nil
}

func (r *ParameterGormRepository) FindBySlug(ctx context.Context, slug string) (*model.Parameter, error) {
	var parameter model.Parameter
	if err := r.active(ctx).Where("slug = ?", slug).First(&parameter).Error; err != nil {
		return nil, translateGormError(err)
	}
	return &parameter, nil
}

func (r *ParameterGormRepository) SlugsWithPrefix(ctx context.Context, prefix string) ([]string, error) {
	var slugs []string
	err := r.db.WithContext(ctx).
		Model(&model.Parameter{}).
		Where(`slug LIKE ? ESCAPE '\'`, escapeLike(prefix)+"%").
		Order("created_at ASC").
		Pluck("slug", &slugs).Error
	if err != nil {
		logger.ErrorWithContext(ctx, "Repository: Failed to load parameter slugs").
			String("prefix", prefix).
			Err(err).
			Log()
		return nil, err
	}

	// sqlite LIKE ignores ASCII case
	matched := slugs[:0]
	for _, slug := range slugs {
		if strings.HasPrefix(slug, prefix) {
			matched = append(matched, slug)
		}
	}
	return matched, nil
}

func (r *ParameterGormRepository) List(ctx context.Context, filter ParameterFilter, skip, limit int) (pagination.FacetResult[model.Parameter], error) {
	start := time.Now()

	scoped := func() *gorm.DB {
		query := r.active(ctx)
		if filter.Name != "" {
			query = query.Where("name = ?", filter.Name)
		}
		if filter.CategoryID != "" {
			query = query.Where("category = ?", filter.CategoryID)
		}
		return query
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		logger.ErrorWithContext(ctx, "Repository: Failed to count parameters").Err(err).Log()
		return pagination.FacetResult[model.Parameter]{}, err
	}

	var parameters []model.Parameter
	if err := scoped().
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&parameters).Error; err != nil {
		logger.ErrorWithContext(ctx, "Repository: Failed to list parameters").
			String("name", filter.Name).
			String("category", filter.CategoryID).
			Err(err).
			Log()
		return pagination.FacetResult[model.Parameter]{}, err
	}

	logger.DebugWithContext(ctx, "Repository: Parameters listed").
		Int64("total", total).
		Int("returned", len(parameters)).
		Duration(time.Since(start)).
		Log()

	return pagination.NewFacetResult(total, parameters), nil
}

func (r *ParameterGormRepository) Update(ctx context.Context, parameter *model.Parameter) error {
	result := r.active(ctx).
		Where("id = ?", parameter.ID).
		Updates(map[string]interface{}{
			"value":       parameter.Value,
			"description": parameter.Description,
			"updated_at":  parameter.UpdatedAt,
		})
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Repository: Failed to update parameter").
			String("parameter_id", parameter.ID).
			Err(result.Error).
			Log()
		return translateGormError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (r *ParameterGormRepository) SoftDelete(ctx context.Context, id string, at time.Time) error {
	result := r.active(ctx).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"delete_at":  at,
			"updated_at": at,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
