package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/elethrixneil1/bsit1e/internal/db"
	"github.com/elethrixneil1/bsit1e/internal/enrollment"
	"github.com/elethrixneil1/bsit1e/internal/user"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// NewDB opens an in-memory SQLite database with the portal schema applied.
// The single pooled connection keeps the in-memory database alive for the
// duration of the test.
func NewDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, "file::memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	database := bun.NewDB(sqldb, sqlitedialect.New())

	ctx := context.Background()
	err = db.RunMigrations(ctx, database, (*user.User)(nil), (*enrollment.Enrollment)(nil))
	require.NoError(t, err)

	t.Cleanup(func() { database.Close() })
	return database
}

// CleanupTables truncates the given tables between subtests.
func CleanupTables(t *testing.T, database *bun.DB, tables ...string) {
	t.Helper()

	ctx := context.Background()
	for _, table := range tables {
		_, err := database.ExecContext(ctx, "DELETE FROM "+table)
		require.NoError(t, err, "failed to clean table: %s", table)
	}
}
