package repository

import (
	"context"
	"time"

	"github.com/paramreg/registry/internal/model"
	"github.com/paramreg/registry/pkg/logger"
	"github.com/paramreg/registry/pkg/pagination"
	"gorm.io/gorm"
)

type CategoryGormRepository struct {
	db *gorm.DB
}

func NewCategoryGormRepository(db *gorm.DB) *CategoryGormRepository {
	return &CategoryGormRepository{db: db}
}

func (r *CategoryGormRepository) active(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&model.Category{}).Where("delete_at IS NULL")
}

func (r *CategoryGormRepository) Create(ctx context.Context, category *model.Category) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	err := translateGormError(r.db.WithContext(ctx).Create(category).Error)

	if err != nil {
		logger.ErrorWithContext(ctx, "Repository: Failed to create category").
			String("slug", category.Slug).
			Duration(time.Since(start)).
			Err(err).
			Log()
		return err
	}

	logger.DebugWithContext(ctx, "Repository: Category created").
		String("category_id", category.ID).
		String("slug", category.Slug).
		Duration(time.Since(start)).
		Log()
	return nil
}

func (r *CategoryGormRepository) FindByID(ctx context.Context, id string, includeDeleted bool) (*model.Category, error) {
	query := r.db.WithContext(ctx).Where("id = ?", id)
	if !includeDeleted {
		query = query.Where("delete_at IS NULL")
	}

	start := time.Now()
	var category model.Category
	if err := query.First(&category).Error; err != nil {
		err = translateGormError(err)
		if err != ErrRecordNotFound {
			logger.ErrorWithContext(ctx, "Repository: Failed to get category by ID").
				String("category_id", id).
				Duration(time.Since(start)).
				Err(err).
				Log()
		}
		return nil, err
	}

	return &category, nil
}

func (r *CategoryGormRepository) FindBySlug(ctx context.Context, slug string) (*model.Category, error) {
	start := time.Now()
	var category model.Category
	if err := r.active(ctx).Where("slug = ?", slug).First(&category).Error; err != nil {
		err = translateGormError(err)
		if err != ErrRecordNotFound {
			logger.ErrorWithContext(ctx, "Repository: Failed to get category by slug").
				String("slug", slug).
				Duration(time.Since(start)).
				Err(err).
				Log()
		}
		return nil, err
	}

	return &category, nil
}

func (r *CategoryGormRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.active(ctx).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, translateGormError(err)
	}
	return count > 0, nil
}

func (r *CategoryGormRepository) List(ctx context.Context, skip, limit int) (pagination.FacetResult[model.Category], error) {
	start := time.Now()

	var total int64
	if err := r.active(ctx).Count(&total).Error; err != nil {
		logger.ErrorWithContext(ctx, "Repository: Failed to count categories").Err(err).Log()
		return pagination.FacetResult[model.Category]{}, err
	}

	var categories []model.Category
	if err := r.active(ctx).
		Order("created_at ASC").
		Offset(skip).
		Limit(limit).
		Find(&categories).Error; err != nil {
		logger.ErrorWithContext(ctx, "Repository: Failed to list categories").
			Int("skip", skip).
			Int("limit", limit).
			Err(err).
			Log()
		return pagination.FacetResult[model.Category]{}, err
	}

	logger.DebugWithContext(ctx, "Repository: Categories listed").
		Int64("total", total).
		Int("returned", len(categories)).
		Duration(time.Since(start)).
		Log()

	return pagination.NewFacetResult(total, categories), nil
}

func (r *CategoryGormRepository) Update(ctx context.Context, category *model.Category) error {
	result := r.active(ctx).
		Where("id = ?", category.ID).
		Updates(map[string]interface{}{
			"name":        category.Name,
			"description": category.Description,
			"updated_at":  category.UpdatedAt,
		})
	if result.Error != nil {
		err := translateGormError(result.Error)
		logger.ErrorWithContext(ctx, "Repository: Failed to update category").
			String("category_id", category.ID).
			Err(err).
			Log()
		return err
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (r *CategoryGormRepository) SoftDelete(ctx context.Context, id string, at time.Time) error {
	result := r.active(ctx).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"delete_at":  at,
			"updated_at": at,
		})
	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Repository: Failed to delete category").
			String("category_id", id).
			Err(result.Error).
			Log()
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// AppendParameter adds parameterID to the category's back-reference list.
func (r *CategoryGormRepository) AppendParameter(ctx context.Context, categoryID, parameterID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category model.Category
		if err := tx.Where("id = ?", categoryID).First(&category).Error; err != nil {
			return translateGormError(err)
		}

		refs := append(category.Parameters, parameterID)
		return tx.Model(&model.Category{}).
			Where("id = ?", categoryID).
			Update("parameters", refs).Error
	})
}
