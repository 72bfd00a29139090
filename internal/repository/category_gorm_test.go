package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryGormCreateAndFind(t *testing.T) {
	repo := NewCategoryGormRepository(setupTestDB(t))
	ctx := context.Background()

	created := mustCreateCategory(t, repo, newCategory("Frutas", "frutas", 0))

	byID, err := repo.FindByID(ctx, created.ID, false)
	require.NoError(t, err)
	assert.Equal(t, "Frutas", byID.Name)
	assert.Empty(t, byID.Parameters)
	assert.Nil(t, byID.DeleteAt)

	bySlug, err := repo.FindBySlug(ctx, "frutas")
	require.NoError(t, err)
	assert.Equal(t, created.ID, bySlug.ID)

	exists, err := repo.ExistsBySlug(ctx, "frutas")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = repo.FindBySlug(ctx, "verduras")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestCategoryGormDuplicateSlug(t *testing.T) {
	repo := NewCategoryGormRepository(setupTestDB(t))

	mustCreateCategory(t, repo, newCategory("Frutas", "frutas", 0))

	err := repo.Create(context.Background(), newCategory("FRUTAS", "frutas", 1))
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestCategoryGormSoftDelete(t *testing.T) {
	repo := NewCategoryGormRepository(setupTestDB(t))
	ctx := context.Background()

	created := mustCreateCategory(t, repo, newCategory("Frutas", "frutas", 0))
	deletedAt := baseTime.Add(100 * time.Minute)

	require.NoError(t, repo.SoftDelete(ctx, created.ID, deletedAt))

	_, err := repo.FindByID(ctx, created.ID, false)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	_, err = repo.FindBySlug(ctx, "frutas")
	assert.ErrorIs(t, err, ErrRecordNotFound)

	deleted, err := repo.FindByID(ctx, created.ID, true)
	require.NoError(t, err)
	require.NotNil(t, deleted.DeleteAt)
	assert.True(t, deleted.DeleteAt.Equal(deletedAt))
	assert.True(t, deleted.UpdatedAt.Equal(deletedAt))

	assert.ErrorIs(t, repo.SoftDelete(ctx, created.ID, deletedAt), ErrRecordNotFound)

	// the slug is free again once the holder is deleted
	assert.NoError(t, repo.Create(ctx, newCategory("Frutas", "frutas", 2)))
}

func TestCategoryGormListOrderAndFacet(t *testing.T) {
	repo := NewCategoryGormRepository(setupTestDB(t))
	ctx := context.Background()

	third := mustCreateCategory(t, repo, newCategory("Tercera", "tercera", 3))
	first := mustCreateCategory(t, repo, newCategory("Primera", "primera", 1))
	second := mustCreateCategory(t, repo, newCategory("Segunda", "segunda", 2))
	gone := mustCreateCategory(t, repo, newCategory("Borrada", "borrada", 0))
	require.NoError(t, repo.SoftDelete(ctx, gone.ID, baseTime))

	page, err := repo.List(ctx, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total())
	require.Len(t, page.Data, 2)
	assert.Equal(t, first.ID, page.Data[0].ID)
	assert.Equal(t, second.ID, page.Data[1].ID)

	page, err = repo.List(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, third.ID, page.Data[0].ID)

	page, err = repo.List(ctx, 10, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total())
	assert.Empty(t, page.Data)
}

func TestCategoryGormUpdate(t *testing.T) {
	repo := NewCategoryGormRepository(setupTestDB(t))
	ctx := context.Background()

	created := mustCreateCategory(t, repo, newCategory("Frutas", "frutas", 0))
	created.Description = "Una descripcion nueva y distinta"
	created.UpdatedAt = baseTime.Add(100 * time.Minute)

	require.NoError(t, repo.Update(ctx, created))

	stored, err := repo.FindByID(ctx, created.ID, false)
	require.NoError(t, err)
	assert.Equal(t, "Una descripcion nueva y distinta", stored.Description)
	assert.Equal(t, "frutas", stored.Slug)
	assert.True(t, stored.UpdatedAt.Equal(created.UpdatedAt))
	assert.True(t, stored.CreatedAt.Equal(baseTime))

	missing := newCategory("Nada", "nada", 0)
	assert.ErrorIs(t, repo.Update(ctx, missing), ErrRecordNotFound)
}

func TestCategoryGormUpdateNameCollision(t *testing.T) {
	repo := NewCategoryGormRepository(setupTestDB(t))
	ctx := context.Background()

	mustCreateCategory(t, repo, newCategory("Frutas", "frutas", 0))
	other := mustCreateCategory(t, repo, newCategory("Verduras", "verduras", 1))

	other.Name = "Frutas"
	assert.ErrorIs(t, repo.Update(ctx, other), ErrDuplicateKey)
}

func TestCategoryGormAppendParameter(t *testing.T) {
	repo := NewCategoryGormRepository(setupTestDB(t))
	ctx := context.Background()

	created := mustCreateCategory(t, repo, newCategory("Frutas", "frutas", 0))

	require.NoError(t, repo.AppendParameter(ctx, created.ID, "p-1"))
	require.NoError(t, repo.AppendParameter(ctx, created.ID, "p-2"))

	stored, err := repo.FindByID(ctx, created.ID, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"p-1", "p-2"}, []string(stored.Parameters))

	assert.ErrorIs(t, repo.AppendParameter(ctx, "missing", "p-3"), ErrRecordNotFound)
}
