// Package sqlitetest provides an in-memory store for tests.
package sqlitetest

import (
	"testing"

	"hotel-booking/internal/data/repository"
	"hotel-booking/pkg/database"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// New returns a migrated gorm repository over a private in-memory SQLite
// database that is closed when the test ends.
func New(t testing.TB) *repository.Repository {
	t.Helper()
	return repository.NewGormRepository(Open(t), zap.NewNop())
}

// Open returns the underlying migrated *gorm.DB.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, repository.AutoMigrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
