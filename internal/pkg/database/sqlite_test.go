package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSQLiteDB_Memory(t *testing.T) {
	db, err := NewSQLiteDB(":memory:")
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE t (v TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO t (v) VALUES ('a')`)
	require.NoError(t, err)

	var v string
	require.NoError(t, db.QueryRow(`SELECT v FROM t`).Scan(&v))
	assert.Equal(t, "a", v)
}

func TestNewSQLiteDB_File(t *testing.T) {
	db, err := NewSQLiteDB(filepath.Join(t.TempDir(), "selection.db"))
	require.NoError(t, err)
	assert.NoError(t, db.Close())
}

func TestNewSQLiteDB_RequiresPath(t *testing.T) {
	_, err := NewSQLiteDB("  ")
	assert.Error(t, err)
}
