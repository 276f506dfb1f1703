package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func tableExists(t *testing.T, path string) bool {
	t.Helper()
	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()
	var n int
	require.NoError(t, db.QueryRowContext(context.Background(),
		`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='container_states'`).Scan(&n))
	return n == 1
}

func TestSetupIsIdempotent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "dir", "state.db")
	db, err := Setup(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Setup(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.True(t, tableExists(t, path))
}

func TestEmbeddedMigrationsAreIdempotent(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, RunEmbeddedMigrations(dbPath))
	require.NoError(t, RunEmbeddedMigrations(dbPath), "second run is a no-op")
	require.True(t, tableExists(t, dbPath))
}

func TestWithTxRollsBack(t *testing.T) {
	t.Parallel()

	db, err := Setup(filepath.Join(t.TempDir(), "tx.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	ctx := context.Background()

	err = WithTx(ctx, db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO container_states(id, name) VALUES ('a', 'a')`)
		require.NoError(t, err)
		_, err = tx.ExecContext(ctx, `INSERT INTO container_states(id, name) VALUES ('b', 'a')`)
		return err
	})
	require.Error(t, err, "duplicate name")

	var n int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM container_states`).Scan(&n))
	require.Zero(t, n)
}

func TestNowIsUTCSeconds(t *testing.T) {
	t.Parallel()

	now := Now()
	require.Equal(t, time.UTC, now.Location())
	require.Zero(t, now.Nanosecond())
}
