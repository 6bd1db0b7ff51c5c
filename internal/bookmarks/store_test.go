package bookmarks

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"polyscope/internal/kvstore"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "store.json")
	return NewStore(kvstore.NewFileStore(path)), path
}

func TestToggleAddsThenRemoves(t *testing.T) {
	s, _ := newTestStore(t)

	assert.True(t, s.Toggle("mkt-1"), "first toggle bookmarks")
	assert.True(t, s.Contains("mkt-1"))

	assert.False(t, s.Toggle("mkt-1"), "second toggle removes")
	assert.False(t, s.Contains("mkt-1"))
	assert.Zero(t, s.Len())
}

func TestInsertionOrderPreserved(t *testing.T) {
	s, _ := newTestStore(t)
	s.Toggle("a")
	s.Toggle("b")
	s.Toggle("c")

	s.Toggle("b") // remove
	s.Toggle("b") // re-add at the end

	assert.Equal(t, []string{"a", "c", "b"}, s.List())
}

func TestPersistAcrossReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	s := NewStore(kvstore.NewFileStore(path))
	s.Toggle("a")
	s.Toggle("b")

	reloaded := NewStore(kvstore.NewFileStore(path))
	assert.Equal(t, []string{"a", "b"}, reloaded.List())
	assert.True(t, reloaded.Contains("a"))
}

func TestCorruptDataFailsOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	kv := kvstore.NewFileStore(path)
	require.NoError(t, kv.Set(StorageKey, []byte(`{"not":"a list"}`)))

	s := NewStore(kv)
	assert.Zero(t, s.Len(), "malformed entry resets to empty")

	// Store stays fully usable afterwards.
	assert.True(t, s.Toggle("x"))
	assert.Equal(t, []string{"x"}, s.List())
}

func TestLoadDeduplicatesStoredIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	kv := kvstore.NewFileStore(path)
	require.NoError(t, kv.Set(StorageKey, []byte(`["a","a","","b"]`)))

	s := NewStore(kv)
	assert.Equal(t, []string{"a", "b"}, s.List())
}

func TestPersistWritesEmptyListNotNull(t *testing.T) {
	s, path := newTestStore(t)
	s.Toggle("a")
	s.Toggle("a")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `[]`)
	assert.NotContains(t, string(data), `null`)
}

func TestListReturnsCopy(t *testing.T) {
	s, _ := newTestStore(t)
	s.Toggle("a")

	got := s.List()
	got[0] = "mutated"

	assert.Equal(t, []string{"a"}, s.List())
}
