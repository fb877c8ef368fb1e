package dbtest

import (
	"testing"

	"estate/db"
	"estate/db/migrations"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

// New открывает чистую in-memory SQLite с применёнными миграциями.
// Одно соединение: у каждого соединения :memory: своя база.
func New(t *testing.T) *db.Storage {
	t.Helper()

	conn, err := db.Open("sqlite3", "file::memory:?_foreign_keys=on", 1)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, migrations.Run(conn.DB, "sqlite3"))
	return db.NewStorage(conn)
}
