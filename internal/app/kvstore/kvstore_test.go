package kvstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()

	t.Run("missing key is absent", func(t *testing.T) {
		_, ok := s.Get("missing")
		assert.False(t, ok)
	})

	t.Run("set then get round-trips", func(t *testing.T) {
		require.NoError(t, s.Set(KeyTheme, []byte("true")))

		got, ok := s.Get(KeyTheme)
		require.True(t, ok)
		assert.Equal(t, []byte("true"), got)
	})

	t.Run("set replaces the previous value", func(t *testing.T) {
		require.NoError(t, s.Set(KeyTheme, []byte("false")))

		got, _ := s.Get(KeyTheme)
		assert.Equal(t, []byte("false"), got)
	})

	t.Run("remove deletes and tolerates missing keys", func(t *testing.T) {
		require.NoError(t, s.Remove(KeyTheme))
		_, ok := s.Get(KeyTheme)
		assert.False(t, ok)

		assert.NoError(t, s.Remove(KeyTheme))
	})

	t.Run("returned values are copies", func(t *testing.T) {
		require.NoError(t, s.Set(KeyCart, []byte(`{"items":[]}`)))

		got, _ := s.Get(KeyCart)
		got[0] = 'X'

		again, _ := s.Get(KeyCart)
		assert.Equal(t, []byte(`{"items":[]}`), again)
	})
}

func TestFileStore(t *testing.T) {
	t.Run("persists across instances", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sessions.json")

		first := NewFileStore(path)
		require.NoError(t, first.Set("sess_1:"+KeyTheme, []byte("true")))
		require.NoError(t, first.Set("sess_1:"+KeyCart, []byte(`{"items":[]}`)))

		second := NewFileStore(path)
		got, ok := second.Get("sess_1:" + KeyTheme)
		require.True(t, ok)
		assert.Equal(t, []byte("true"), got)
	})

	t.Run("remove persists across instances", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sessions.json")

		first := NewFileStore(path)
		require.NoError(t, first.Set(KeyUser, []byte(`{"id":"user_1"}`)))
		require.NoError(t, first.Remove(KeyUser))

		second := NewFileStore(path)
		_, ok := second.Get(KeyUser)
		assert.False(t, ok)
	})

	t.Run("missing file starts empty", func(t *testing.T) {
		s := NewFileStore(filepath.Join(t.TempDir(), "nope.json"))
		_, ok := s.Get(KeyUser)
		assert.False(t, ok)
	})

	t.Run("malformed file is treated as absent data", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sessions.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

		s := NewFileStore(path)
		_, ok := s.Get(KeyUser)
		assert.False(t, ok)

		// The store stays usable after discarding the corrupt document.
		require.NoError(t, s.Set(KeyTheme, []byte("true")))
		got, ok := s.Get(KeyTheme)
		require.True(t, ok)
		assert.Equal(t, []byte("true"), got)
	})
}

func TestNamespaced(t *testing.T) {
	backing := NewMemoryStore()

	a := Namespaced(backing, "sess_aaa")
	b := Namespaced(backing, "sess_bbb")

	require.NoError(t, a.Set(KeyTheme, []byte("true")))
	require.NoError(t, b.Set(KeyTheme, []byte("false")))

	gotA, ok := a.Get(KeyTheme)
	require.True(t, ok)
	assert.Equal(t, []byte("true"), gotA)

	gotB, ok := b.Get(KeyTheme)
	require.True(t, ok)
	assert.Equal(t, []byte("false"), gotB)

	raw, ok := backing.Get("sess_aaa:" + KeyTheme)
	require.True(t, ok)
	assert.Equal(t, []byte("true"), raw)

	require.NoError(t, a.Remove(KeyTheme))
	_, ok = a.Get(KeyTheme)
	assert.False(t, ok)

	_, ok = b.Get(KeyTheme)
	assert.True(t, ok, "removal must not cross namespaces")
}
