package existstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "titles.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_RecordAndLookup(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)

	exists, known, err := s.Lookup("Foo")
	require.NoError(t, err)
	assert.False(t, known)
	assert.False(t, exists)

	require.NoError(t, s.Record("Foo", true))
	require.NoError(t, s.Record("Bar", false))

	exists, known, err = s.Lookup("Foo")
	require.NoError(t, err)
	assert.True(t, known)
	assert.True(t, exists)

	exists, known, err = s.Lookup("Bar")
	require.NoError(t, err)
	assert.True(t, known)
	assert.False(t, exists)

	n, err := s.Len()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestStore_RecordReplaces(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)

	require.NoError(t, s.Record("Foo", false))
	require.NoError(t, s.Record("Foo", true))

	exists, known, err := s.Lookup("Foo")
	require.NoError(t, err)
	assert.True(t, known)
	assert.True(t, exists)

	n, err := s.Len()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestStore_Remove(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)

	require.NoError(t, s.Record("Foo", true))
	require.NoError(t, s.Remove("Foo"))

	_, known, err := s.Lookup("Foo")
	require.NoError(t, err)
	assert.False(t, known)
}

func TestStore_RegistryInterface(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)

	s.SetKnown("Main_Page", true)
	exists, known := s.Known("Main_Page")
	assert.True(t, known)
	assert.True(t, exists)

	s.Forget("Main_Page")
	_, known = s.Known("Main_Page")
	assert.False(t, known)
}
