package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/paramreg/registry/internal/constants"
	"github.com/paramreg/registry/internal/dto"
	apperrors "github.com/paramreg/registry/internal/errors"
	"github.com/paramreg/registry/internal/model"
	"github.com/paramreg/registry/internal/repository"
	ctxutil "github.com/paramreg/registry/pkg/context"
	"github.com/paramreg/registry/pkg/logger"
	"github.com/paramreg/registry/pkg/pagination"
	"github.com/paramreg/registry/pkg/validation"
)

// CategoryResolver is what the parameter manager needs from categories.
type CategoryResolver interface {
	FindBySlug(ctx context.Context, slug string) (*model.Category, error)
	AddParameterRef(ctx context.Context, categoryID, parameterID string) error
}

// BuildParameter derives a new parameter owned by categoryID. The slug is the
// first free one given existingSlugs and value starts equal to default.
func BuildParameter(req dto.ParameterRequest, categoryID string, existingSlugs []string, now time.Time) (*model.Parameter, error) {
	parameter := &model.Parameter{
		ID:          uuid.NewString(),
		Default:     req.Default,
		Value:       req.Default,
		Name:        req.Name,
		Slug:        NextSlug(existingSlugs, Slugify(req.Name)),
		Description: req.Description,
		CategoryID:  categoryID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if msgs := validation.Struct(parameter); msgs != nil {
		return nil, apperrors.WithDetails(apperrors.ErrValidation, msgs...)
	}
	return parameter, nil
}

type ParameterService struct {
	repo       repository.ParameterRepository
	categories CategoryResolver
	now        func() time.Time
}

func NewParameterService(repo repository.ParameterRepository, categories CategoryResolver, opts ...Option) *ParameterService {
	o := buildOptions(opts)
	return &ParameterService{repo: repo, categories: categories, now: o.now}
}

// Create stores a parameter under the category named by req.Category. A
// slug taken between reading the existing slugs and inserting is retried
// with the next suffix.
func (s *ParameterService) Create(ctx context.Context, req dto.ParameterRequest) (*model.Parameter, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "CreateParameter")

	category, err := s.categories.FindBySlug(ctx, req.Category)
	if err != nil {
		if apperrors.IsNotFound(err) {
			logger.InfoWithContext(ctx, "Referenced category not found").
				String("category", req.Category).
				Log()
			return nil, apperrors.ErrReferencedCategory
		}
		return nil, err
	}

	candidate := Slugify(req.Name)
	for attempt := 1; attempt <= constants.MaxSlugAttempts; attempt++ {
		existing, err := s.repo.SlugsWithPrefix(ctx, candidate)
		if err != nil {
			return nil, apperrors.WrapError(apperrors.ErrInternal, err)
		}

		parameter, err := BuildParameter(req, category.ID, existing, s.now())
		if err != nil {
			return nil, err
		}

		err = s.repo.Create(ctx, parameter)
		if err == nil {
			s.addReference(ctx, category.ID, parameter.ID)

			logger.InfoWithContext(ctx, "Parameter created").
				String("parameter_id", parameter.ID).
				String("slug", parameter.Slug).
				String("category_id", category.ID).
				Int("attempt", attempt).
				Log()
			return parameter, nil
		}
		if !errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperrors.WrapError(apperrors.ErrInternal, err)
		}

		logger.WarnWithContext(ctx, "Parameter slug collided, retrying").
			String("slug", parameter.Slug).
			Int("attempt", attempt).
			Log()
	}

	return nil, apperrors.ErrParameterSlugTaken
}

// addReference never fails the creation; the category list may drift.
func (s *ParameterService) addReference(ctx context.Context, categoryID, parameterID string) {
	if err := s.categories.AddParameterRef(ctx, categoryID, parameterID); err != nil {
		logger.WarnWithContext(ctx, "Failed to add parameter to category").
			String("category_id", categoryID).
			String("parameter_id", parameterID).
			Err(err).
			Log()
	}
}

// FindAll lists active parameters, newest first. An unknown category slug
// yields an empty page.
func (s *ParameterService) FindAll(ctx context.Context, params pagination.Params, filter dto.ParameterFilter) (pagination.Envelope[model.Parameter], error) {
	ctx = ctxutil.WithFunction(ctx, "service", "FindAllParameters")
	params = params.Normalize()

	query := repository.ParameterFilter{Name: filter.Name}
	if filter.Category != "" {
		category, err := s.categories.FindBySlug(ctx, filter.Category)
		if err != nil {
			if apperrors.IsNotFound(err) {
				return pagination.Empty[model.Parameter](params), nil
			}
			return pagination.Envelope[model.Parameter]{}, err
		}
		query.CategoryID = category.ID
	}

	result, err := s.repo.List(ctx, query, params.Skip(), params.PageSize)
	if err != nil {
		return pagination.Envelope[model.Parameter]{}, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	return pagination.BuildEnvelope(params, result), nil
}

func (s *ParameterService) FindBySlug(ctx context.Context, slug string) (*model.Parameter, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "FindParameterBySlug")
	parameter, err := s.repo.FindBySlug(ctx, slug)
	return parameter, translateParameterError(err)
}

func (s *ParameterService) FindByID(ctx context.Context, id string) (*model.Parameter, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "FindParameterByID")
	parameter, err := s.repo.FindByID(ctx, id, false)
	return parameter, translateParameterError(err)
}

// Update changes value and/or description. Name, slug and default are fixed.
func (s *ParameterService) Update(ctx context.Context, id string, req dto.ParameterUpdateRequest) (*model.Parameter, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "UpdateParameter")

	parameter, err := s.repo.FindByID(ctx, id, false)
	if err != nil {
		return nil, translateParameterError(err)
	}

	if req.Value != nil {
		parameter.Value = *req.Value
	}
	if req.Description != nil {
		parameter.Description = *req.Description
	}
	parameter.UpdatedAt = s.now()

	if msgs := validation.Struct(parameter); msgs != nil {
		return nil, apperrors.WithDetails(apperrors.ErrValidation, msgs...)
	}

	if err := s.repo.Update(ctx, parameter); err != nil {
		return nil, translateParameterError(err)
	}

	logger.InfoWithContext(ctx, "Parameter updated").
		String("parameter_id", id).
		Bool("value_changed", req.Value != nil).
		Log()

	return parameter, nil
}

func (s *ParameterService) Delete(ctx context.Context, id string) (*model.Parameter, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "DeleteParameter")

	parameter, err := s.repo.FindByID(ctx, id, false)
	if err != nil {
		return nil, translateParameterError(err)
	}

	at := s.now()
	if err := s.repo.SoftDelete(ctx, id, at); err != nil {
		return nil, translateParameterError(err)
	}
	parameter.DeleteAt = &at
	parameter.UpdatedAt = at

	logger.InfoWithContext(ctx, "Parameter deleted").
		String("parameter_id", id).
		Log()

	return parameter, nil
}

func translateParameterError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrRecordNotFound):
		return apperrors.ErrParameterNotFound
	default:
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}
}
