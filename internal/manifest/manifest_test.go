package manifest

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) (*Manifest, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "build.db")
	m, err := Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })
	return m, path
}

func TestRecordAndUnchanged(t *testing.T) {
	ctx := context.Background()
	m, _ := openTemp(t)

	same, err := m.Unchanged(ctx, "index.html", "abc")
	require.NoError(t, err)
	assert.False(t, same, "unknown paths are changed")

	require.NoError(t, m.Record(ctx, "index.html", "abc", 10))
	same, err = m.Unchanged(ctx, "index.html", "abc")
	require.NoError(t, err)
	assert.True(t, same)

	require.NoError(t, m.Record(ctx, "index.html", "def", 12))
	same, err = m.Unchanged(ctx, "index.html", "abc")
	require.NoError(t, err)
	assert.False(t, same)

	entries, err := m.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "def", entries[0].Hash)
	assert.Equal(t, int64(12), entries[0].Size)
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	m, _ := openTemp(t)

	require.NoError(t, m.Record(ctx, "a.html", "1", 1))
	require.NoError(t, m.Record(ctx, "b.html", "2", 1))

	n, err := m.Remove(ctx, "a.html", "missing.html")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	entries, err := m.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "b.html", entries[0].Path)
}

func TestReopenKeepsEntries(t *testing.T) {
	ctx := context.Background()
	m, path := openTemp(t)
	require.NoError(t, m.Record(ctx, "index.html", "abc", 3))
	require.NoError(t, m.Close())

	again, err := Open(ctx, path)
	require.NoError(t, err)
	defer again.Close()

	same, err := again.Unchanged(ctx, "index.html", "abc")
	require.NoError(t, err)
	assert.True(t, same)
}

func TestMigratesOldSchema(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "old.db")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE outputs (path TEXT PRIMARY KEY, hash TEXT NOT NULL, built_at DATETIME DEFAULT CURRENT_TIMESTAMP)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO outputs (path, hash) VALUES ('index.html', 'abc')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	m, err := Open(ctx, path)
	require.NoError(t, err)
	defer m.Close()

	entries, err := m.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(0), entries[0].Size)
}
