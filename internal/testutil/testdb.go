package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/revgantt/internal/db"
	"github.com/stretchr/testify/require"
)

// NewTestDB opens a migrated in-memory database that lives until t ends.
func NewTestDB(t testing.TB) *sql.DB {
	t.Helper()
	conn, err := db.OpenDB(":memory:")
	require.NoError(t, err, "open in-memory database")
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

// NewTestUoW wraps conn in the production unit of work.
func NewTestUoW(conn *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(conn)
}
