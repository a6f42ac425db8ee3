// Package testdb opens an isolated in-memory SQLite database with the itinerary
// schema applied, for use in package tests.
package testdb

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "modernc.org/sqlite"

	"github.com/tripmates/itinerary-backend/internal/repo"
)

const dsn = "file::memory:?_pragma=foreign_keys(1)"

func New(t testing.TB) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	// every connection to :memory: is its own database
	sqldb.SetMaxOpenConns(1)
	sqldb.SetMaxIdleConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() {
		_ = db.Close()
	})

	require.NoError(t, repo.CreateSchema(context.Background(), db))
	return db
}

// Exec runs raw statements against db, failing the test on the first error.
func Exec(t testing.TB, db bun.IDB, statements ...string) {
	t.Helper()

	for _, stmt := range statements {
		_, err := db.ExecContext(context.Background(), stmt)
		require.NoError(t, err, stmt)
	}
}

// Count returns the number of rows in table matching where.
func Count(t testing.TB, db *bun.DB, table string, where string, args ...any) int {
	t.Helper()

	q := db.NewSelect().Table(table)
	if where != "" {
		q = q.Where(where, args...)
	}
	n, err := q.Count(context.Background())
	require.NoError(t, err)
	return n
}
