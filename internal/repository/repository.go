package repository

import (
	"context"
	"errors"
	"time"

	"github.com/paramreg/registry/internal/model"
	"github.com/paramreg/registry/pkg/pagination"
)

var (
	// ErrRecordNotFound is returned when no active record matches
	ErrRecordNotFound = errors.New("record not found")
	// ErrDuplicateKey is returned when a write violates a unique index
	ErrDuplicateKey = errors.New("duplicate key")
)

// CategoryRepository is the persistence contract of the category manager.
type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	// FindByID ignores soft-deleted records unless includeDeleted is set
	FindByID(ctx context.Context, id string, includeDeleted bool) (*model.Category, error)
	FindBySlug(ctx context.Context, slug string) (*model.Category, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	List(ctx context.Context, skip, limit int) (pagination.FacetResult[model.Category], error)
	// Update persists name, description and updated_at of an active record
	Update(ctx context.Context, category *model.Category) error
	SoftDelete(ctx context.Context, id string, at time.Time) error
	AppendParameter(ctx context.Context, categoryID, parameterID string) error
}

// ParameterFilter narrows a parameter listing. Empty fields do not filter.
type ParameterFilter struct {
	Name       string
	CategoryID string
}

// ParameterRepository is the persistence contract of the parameter manager.
type ParameterRepository interface {
	Create(ctx context.Context, parameter *model.Parameter) error
	FindByID(ctx context.Context, id string, includeDeleted bool) (*model.Parameter, error)
	FindBySlug(ctx context.Context, slug string) (*model.Parameter, error)
	// SlugsWithPrefix includes soft-deleted records, oldest first
	SlugsWithPrefix(ctx context.Context, prefix string) ([]string, error)
	// List orders by created_at, newest first
	List(ctx context.Context, filter ParameterFilter, skip, limit int) (pagination.FacetResult[model.Parameter], error)
	// Update persists value, description and updated_at of an active record
	Update(ctx context.Context, parameter *model.Parameter) error
	SoftDelete(ctx context.Context, id string, at time.Time) error
}

var (
	_ CategoryRepository  = (*CategoryGormRepository)(nil)
	_ CategoryRepository  = (*CategoryMongoRepository)(nil)
	_ ParameterRepository = (*ParameterGormRepository)(nil)
	_ ParameterRepository = (*ParameterMongoRepository)(nil)
)
