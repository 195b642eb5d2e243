// Package testdb provides throwaway in-memory SQLite stores for tests.
package testdb

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"mercprd/internal/database"
)

// DSN returns a DSN naming a fresh shared-cache in-memory database.
func DSN() string {
	return fmt.Sprintf("file:mercprd_test_%s?mode=memory&cache=shared", uuid.NewString())
}

// Open returns an empty, unmigrated store that is closed when t ends.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Open(DSN(), gormlogger.Discard)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

// OpenMigrated returns a store with the current schema applied.
func OpenMigrated(t testing.TB) *gorm.DB {
	t.Helper()

	db := Open(t)
	require.NoError(t, database.Migrate(db))
	return db
}
