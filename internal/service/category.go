package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/paramreg/registry/internal/dto"
	apperrors "github.com/paramreg/registry/internal/errors"
	"github.com/paramreg/registry/internal/model"
	"github.com/paramreg/registry/internal/repository"
	ctxutil "github.com/paramreg/registry/pkg/context"
	"github.com/paramreg/registry/pkg/logger"
	"github.com/paramreg/registry/pkg/pagination"
	"github.com/paramreg/registry/pkg/validation"
)

// BuildCategory derives a new category from the request: fresh id, slug from
// the name, both timestamps set to now. The result is validated.
func BuildCategory(req dto.CategoryRequest, now time.Time) (*model.Category, error) {
	category := &model.Category{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Slug:        Slugify(req.Name),
		Description: req.Description,
		Parameters:  []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if msgs := validation.Struct(category); msgs != nil {
		return nil, apperrors.WithDetails(apperrors.ErrValidation, msgs...)
	}
	return category, nil
}

type CategoryService struct {
	repo repository.CategoryRepository
	now  func() time.Time
}

func NewCategoryService(repo repository.CategoryRepository, opts ...Option) *CategoryService {
	o := buildOptions(opts)
	return &CategoryService{repo: repo, now: o.now}
}

func (s *CategoryService) Create(ctx context.Context, req dto.CategoryRequest) (*model.Category, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "CreateCategory")

	category, err := BuildCategory(req, s.now())
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsBySlug(ctx, category.Slug)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if exists {
		logger.InfoWithContext(ctx, "Category already exists").
			String("slug", category.Slug).
			Log()
		return nil, apperrors.ErrCategoryExists
	}

	if err := s.repo.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperrors.ErrCategoryExists
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "Category created").
		String("category_id", category.ID).
		String("slug", category.Slug).
		Log()

	return category, nil
}

func (s *CategoryService) FindAll(ctx context.Context, params pagination.Params) (pagination.Envelope[model.Category], error) {
	ctx = ctxutil.WithFunction(ctx, "service", "FindAllCategories")
	params = params.Normalize()

	result, err := s.repo.List(ctx, params.Skip(), params.PageSize)
	if err != nil {
		return pagination.Envelope[model.Category]{}, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return pagination.BuildEnvelope(params, result), nil
}

func (s *CategoryService) FindByID(ctx context.Context, id string) (*model.Category, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "FindCategoryByID")
	category, err := s.repo.FindByID(ctx, id, false)
	return category, s.translate(err)
}

// FindByIDIncludingDeleted also returns soft-deleted categories.
func (s *CategoryService) FindByIDIncludingDeleted(ctx context.Context, id string) (*model.Category, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "FindCategoryByIDIncludingDeleted")
	category, err := s.repo.FindByID(ctx, id, true)
	return category, s.translate(err)
}

func (s *CategoryService) FindBySlug(ctx context.Context, slug string) (*model.Category, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "FindCategoryBySlug")
	category, err := s.repo.FindBySlug(ctx, slug)
	return category, s.translate(err)
}

// Update merges the provided fields. The slug keeps the value derived at
// creation even when the name changes.
func (s *CategoryService) Update(ctx context.Context, id string, req dto.CategoryUpdateRequest) (*model.Category, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "UpdateCategory")

	category, err := s.repo.FindByID(ctx, id, false)
	if err != nil {
		return nil, s.translate(err)
	}

	if req.Name != nil && *req.Name != category.Name {
		holder, err := s.repo.FindBySlug(ctx, Slugify(*req.Name))
		switch {
		case err == nil && holder.ID != category.ID:
			return nil, apperrors.ErrCategoryExists
		case err != nil && !errors.Is(err, repository.ErrRecordNotFound):
			return nil, apperrors.WrapError(apperrors.ErrInternal, err)
		}
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	category.UpdatedAt = s.now()

	if msgs := validation.Struct(category); msgs != nil {
		return nil, apperrors.WithDetails(apperrors.ErrValidation, msgs...)
	}

	if err := s.repo.Update(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperrors.ErrCategoryExists
		}
		return nil, s.translate(err)
	}

	logger.InfoWithContext(ctx, "Category updated").
		String("category_id", category.ID).
		Bool("name_changed", req.Name != nil).
		Bool("description_changed", req.Description != nil).
		Log()

	return category, nil
}

// Delete soft-deletes the category and returns it as stored.
func (s *CategoryService) Delete(ctx context.Context, id string) (*model.Category, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "DeleteCategory")

	category, err := s.repo.FindByID(ctx, id, false)
	if err != nil {
		return nil, s.translate(err)
	}

	at := s.now()
	if err := s.repo.SoftDelete(ctx, id, at); err != nil {
		return nil, s.translate(err)
	}
	category.DeleteAt = &at
	category.UpdatedAt = at

	logger.InfoWithContext(ctx, "Category deleted").
		String("category_id", id).
		Log()

	return category, nil
}

// AddParameterRef appends parameterID to the category's parameter list.
func (s *CategoryService) AddParameterRef(ctx context.Context, categoryID, parameterID string) error {
	ctx = ctxutil.WithFunction(ctx, "service", "AddParameterRef")
	return s.translate(s.repo.AppendParameter(ctx, categoryID, parameterID))
}

func (s *CategoryService) translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrRecordNotFound):
		return apperrors.ErrCategoryNotFound
	default:
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
}
