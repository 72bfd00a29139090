package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParameterGormCreateAndFind(t *testing.T) {
	repo := NewParameterGormRepository(setupTestDB(t))
	ctx := context.Background()

	created := mustCreateParameter(t, repo, newParameter("nombre parametro", "nombre_parametro", "cat-1", 0))

	byID, err := repo.FindByID(ctx, created.ID, false)
	require.NoError(t, err)
	assert.Equal(t, "10", byID.Default)
	assert.Equal(t, "cat-1", byID.CategoryID)

	bySlug, err := repo.FindBySlug(ctx, "nombre_parametro")
	require.NoError(t, err)
	assert.Equal(t, created.ID, bySlug.ID)

	_, err = repo.FindBySlug(ctx, "otro")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestParameterGormSlugUniqueIncludesDeleted(t *testing.T) {
	repo := NewParameterGormRepository(setupTestDB(t))
	ctx := context.Background()

	created := mustCreateParameter(t, repo, newParameter("nombre parametro", "nombre_parametro", "cat-1", 0))
	require.NoError(t, repo.SoftDelete(ctx, created.ID, baseTime))

	err := repo.Create(ctx, newParameter("nombre parametro", "nombre_parametro", "cat-1", 1))
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestParameterGormSlugsWithPrefix(t *testing.T) {
	repo := NewParameterGormRepository(setupTestDB(t))
	ctx := context.Background()

	mustCreateParameter(t, repo, newParameter("nombre parametro", "nombre_parametro", "cat-1", 0))
	second := mustCreateParameter(t, repo, newParameter("nombre parametro", "nombre_parametro1", "cat-1", 1))
	mustCreateParameter(t, repo, newParameter("nombre parametro", "nombre_parametro2", "cat-2", 2))
	mustCreateParameter(t, repo, newParameter("nombre xparametro", "nombreXparametro", "cat-1", 3))
	mustCreateParameter(t, repo, newParameter("otro nombre", "otro_nombre", "cat-1", 4))
	require.NoError(t, repo.SoftDelete(ctx, second.ID, baseTime))

	slugs, err := repo.SlugsWithPrefix(ctx, "nombre_parametro")
	require.NoError(t, err)
	assert.Equal(t, []string{"nombre_parametro", "nombre_parametro1", "nombre_parametro2"}, slugs)

	slugs, err = repo.SlugsWithPrefix(ctx, "sin_coincidencias")
	require.NoError(t, err)
	assert.Empty(t, slugs)
}

func TestParameterGormListFilters(t *testing.T) {
	repo := NewParameterGormRepository(setupTestDB(t))
	ctx := context.Background()

	oldest := mustCreateParameter(t, repo, newParameter("nombre de parametro", "nombre_de_parametro", "cat-1", 0))
	newest := mustCreateParameter(t, repo, newParameter("nombre de parametro", "nombre_de_parametro1", "cat-1", 2))
	mustCreateParameter(t, repo, newParameter("nombre de parametro", "nombre_de_parametro2", "cat-2", 1))
	mustCreateParameter(t, repo, newParameter("precio base", "precio_base", "cat-1", 3))
	gone := mustCreateParameter(t, repo, newParameter("nombre de parametro", "nombre_de_parametro3", "cat-1", 4))
	require.NoError(t, repo.SoftDelete(ctx, gone.ID, baseTime))

	all, err := repo.List(ctx, ParameterFilter{}, 0, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(4), all.Total())
	assert.Equal(t, "precio_base", all.Data[0].Slug)

	both, err := repo.List(ctx, ParameterFilter{Name: "nombre de parametro", CategoryID: "cat-1"}, 0, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), both.Total())
	require.Len(t, both.Data, 2)
	assert.Equal(t, newest.ID, both.Data[0].ID)
	assert.Equal(t, oldest.ID, both.Data[1].ID)

	none, err := repo.List(ctx, ParameterFilter{Name: "nombre de parametro", CategoryID: "cat-9"}, 0, 20)
	require.NoError(t, err)
	assert.Zero(t, none.Total())
	assert.Empty(t, none.Data)
}

func TestParameterGormUpdateAndDelete(t *testing.T) {
	repo := NewParameterGormRepository(setupTestDB(t))
	ctx := context.Background()

	created := mustCreateParameter(t, repo, newParameter("precio base", "precio_base", "cat-1", 0))
	created.Value = "25"
	created.Description = "Precio antes de impuestos"
	created.UpdatedAt = baseTime.Add(time.Hour)

	require.NoError(t, repo.Update(ctx, created))

	stored, err := repo.FindByID(ctx, created.ID, false)
	require.NoError(t, err)
	assert.Equal(t, "25", stored.Value)
	assert.Equal(t, "10", stored.Default)
	assert.Equal(t, "Precio antes de impuestos", stored.Description)

	require.NoError(t, repo.SoftDelete(ctx, created.ID, baseTime.Add(2*time.Hour)))
	assert.ErrorIs(t, repo.Update(ctx, created), ErrRecordNotFound)
	assert.ErrorIs(t, repo.SoftDelete(ctx, created.ID, baseTime), ErrRecordNotFound)

	_, err = repo.FindByID(ctx, created.ID, true)
	assert.NoError(t, err)
}
