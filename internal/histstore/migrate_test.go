package histstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devpulse/devpulse/schema"
)

func TestMigrateStore_SQLiteUpAndDown(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "devpulse.db")

	// Up to latest
	require.NoError(t, MigrateStore(schema.SQLiteBackend, dbPath, -1))

	// Running again is a no-op
	require.NoError(t, MigrateStore(schema.SQLiteBackend, dbPath, -1))

	// Migrated schema is usable by the store
	store, err := Open(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// All the way back down
	require.NoError(t, MigrateStore(schema.SQLiteBackend, dbPath, 0))
}

func TestMigrateStore_UnsupportedBackend(t *testing.T) {
	err := MigrateStore(schema.DatabaseBackend("oracle"), "", -1)
	assert.ErrorContains(t, err, "unsupported backend")
}
