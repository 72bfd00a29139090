package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/paramreg/registry/internal/dto"
	"github.com/paramreg/registry/internal/model"
	"github.com/paramreg/registry/internal/repository"
	"github.com/paramreg/registry/pkg/database"
	"github.com/stretchr/testify/require"
)

// fakeClock advances one second on every reading.
type fakeClock struct {
	mu      sync.Mutex
	current time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{current: time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = c.current.Add(time.Second)
	return c.current
}

type testServices struct {
	categories *CategoryService
	parameters *ParameterService
	clock      *fakeClock
}

func setupServices(t *testing.T) *testServices {
	t.Helper()

	db, err := database.NewSQLiteDB(":memory:", "test")
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() { _ = database.CloseDB(db) })

	clock := newFakeClock()
	categories := NewCategoryService(repository.NewCategoryGormRepository(db), WithClock(clock.Now))
	parameters := NewParameterService(repository.NewParameterGormRepository(db), categories, WithClock(clock.Now))

	return &testServices{categories: categories, parameters: parameters, clock: clock}
}

func (s *testServices) createCategory(t *testing.T, name string) *model.Category {
	t.Helper()
	category, err := s.categories.Create(context.Background(), dto.CategoryRequest{
		Name:        name,
		Description: "Categoria creada para las pruebas",
	})
	require.NoError(t, err)
	return category
}

func (s *testServices) createParameter(t *testing.T, name, categorySlug string) *model.Parameter {
	t.Helper()
	parameter, err := s.parameters.Create(context.Background(), dto.ParameterRequest{
		Default:  "100",
		Name:     name,
		Category: categorySlug,
	})
	require.NoError(t, err)
	return parameter
}

func strPtr(s string) *string { return &s }
