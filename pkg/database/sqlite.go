package database

import (
	"fmt"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewSQLiteDB opens an embedded database. ":memory:" gives a private
// database, used by tests.
func NewSQLiteDB(path, environment string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), gormConfig(environment))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %q: %w", path, err)
	}

	// every pooled connection to an in-memory database sees its own empty copy
	if strings.Contains(path, ":memory:") || strings.Contains(path, "mode=memory") {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}
