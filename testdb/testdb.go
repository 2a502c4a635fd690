// Package testdb opens a migrated SQLite database for tests.
package testdb

import (
	"path/filepath"
	"testing"

	"accel-erp-backend/config"
	"accel-erp-backend/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns a fresh database file under t.TempDir with every model
// migrated. SQLite ignores row locks, so locking queries run unchanged.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_pragma=busy_timeout(5000)&_time_format=sqlite"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// Install opens a database and makes it config.DB until the test ends.
func Install(t testing.TB) *gorm.DB {
	t.Helper()

	db := Open(t)
	prev := config.DB
	config.DB = db
	t.Cleanup(func() { config.DB = prev })
	return db
}
