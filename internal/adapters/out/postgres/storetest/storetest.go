// Package storetest opens throwaway in-memory SQLite databases with the
// lifecycle schema for repository and handler tests.
package storetest

import (
	"fmt"
	"testing"

	"marketplace/internal/adapters/out/postgres"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns a migrated database private to the test. Connections share
// one in-memory database through the shared cache.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, postgres.Migrate(db))
	return db
}
