package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/paramreg/registry/internal/model"
	"github.com/paramreg/registry/pkg/database"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var baseTime = time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.NewSQLiteDB(":memory:", "test")
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	t.Cleanup(func() { _ = database.CloseDB(db) })
	return db
}

func newCategory(name, slug string, offset int) *model.Category {
	at := baseTime.Add(time.Duration(offset) * time.Minute)
	return &model.Category{
		ID:          uuid.NewString(),
		Name:        name,
		Slug:        slug,
		Description: "A description long enough to pass",
		Parameters:  []string{},
		CreatedAt:   at,
		UpdatedAt:   at,
	}
}

func newParameter(name, slug, categoryID string, offset int) *model.Parameter {
	at := baseTime.Add(time.Duration(offset) * time.Minute)
	return &model.Parameter{
		ID:         uuid.NewString(),
		Name:       name,
		Slug:       slug,
		Default:    "10",
		Value:      "10",
		CategoryID: categoryID,
		CreatedAt:  at,
		UpdatedAt:  at,
	}
}

func mustCreateCategory(t *testing.T, repo CategoryRepository, c *model.Category) *model.Category {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), c))
	return c
}

func mustCreateParameter(t *testing.T, repo ParameterRepository, p *model.Parameter) *model.Parameter {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}
