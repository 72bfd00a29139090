package database

import (
	"context"
	"testing"

	"github.com/paramreg/registry/config"
	"github.com/paramreg/registry/internal/model"
	"github.com/paramreg/registry/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
)

func TestOpenSQLiteAndMigrate(t *testing.T) {
	cfg := &config.Config{
		App:      config.AppConfig{Environment: "test"},
		Database: config.DatabaseConfig{Driver: config.DriverSQLite, SQLitePath: ":memory:"},
	}

	store, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(context.Background()) })

	require.NoError(t, store.Migrate(context.Background()))
	assert.NoError(t, store.Ping(context.Background()))

	assert.True(t, store.Gorm.Migrator().HasTable(&model.Category{}))
	assert.True(t, store.Gorm.Migrator().HasTable(&model.Parameter{}))
	assert.True(t, store.Gorm.Migrator().HasIndex(&model.Category{}, "idx_categories_slug_active"))
	assert.True(t, store.Gorm.Migrator().HasIndex(&model.Parameter{}, "idx_parameters_slug"))
}

func TestGormLoggerSkipsRecordNotFound(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	previous := logger.GetLogger()
	logger.SetLogger(zap.New(core))
	t.Cleanup(func() { logger.SetLogger(previous) })

	db, err := NewSQLiteDB(":memory:", "test")
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	err = db.First(&model.Category{}, "id = ?", "missing").Error
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
	for _, entry := range logs.All() {
		assert.NotContains(t, entry.Message, "record not found")
	}

	var rows []map[string]interface{}
	err = db.Raw("SELECT * FROM missing_table").Scan(&rows).Error
	require.Error(t, err)
	assert.NotEmpty(t, logs.FilterMessageSnippet("missing_table").All())
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	cfg := &config.Config{Database: config.DatabaseConfig{Driver: "oracle"}}

	_, err := Open(context.Background(), cfg)
	assert.Error(t, err)
}

func TestParseFixtures(t *testing.T) {
	raw := []byte(`
categories:
  - name: Frutas Tropicales
    description: Frutas que crecen en clima calido
    parameters:
      - name: precio base
        default: "100"
      - name: stock minimo
        default: "5"
        description: Unidades minimas en bodega
`)

	fixtures, err := ParseFixtures(raw)
	require.NoError(t, err)
	require.Len(t, fixtures.Categories, 1)

	category := fixtures.Categories[0]
	assert.Equal(t, "Frutas Tropicales", category.Name)
	require.Len(t, category.Parameters, 2)
	assert.Equal(t, "Unidades minimas en bodega", category.Parameters[1].Description)
}

func TestParseFixturesRejectsIncompleteParameter(t *testing.T) {
	raw := []byte(`
categories:
  - name: Frutas
    parameters:
      - name: sin valor
`)

	_, err := ParseFixtures(raw)
	assert.Error(t, err)
}
