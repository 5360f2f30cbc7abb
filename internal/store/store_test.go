package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := New(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestStore_SaveLoadRoundtrip(t *testing.T) {
	s := newTestStore(t)

	type pair struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}

	s.Save(KeyAuthTokens, pair{Access: "a", Refresh: "r"})

	var loaded pair
	assert.True(t, s.LoadJSON(KeyAuthTokens, &loaded))
	assert.Equal(t, pair{Access: "a", Refresh: "r"}, loaded)
}

func TestStore_LoadFailsSoft(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"corrupt json", `{"access": "a",`},
		{"undefined literal", "undefined"},
		{"null literal", "null"},
		{"empty file", ""},
		{"whitespace only", "  \n\t"},
		{"wrong type", `[1, 2, 3]`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			s, err := New(dir)
			require.NoError(t, err)

			require.NoError(t, os.WriteFile(filepath.Join(dir, KeyUser+".json"), []byte(tc.content), 0o600))

			var out map[string]any
			assert.False(t, s.LoadJSON(KeyUser, &out))
		})
	}
}

func TestStore_LoadMissingKey(t *testing.T) {
	s := newTestStore(t)

	var out map[string]any
	assert.False(t, s.LoadJSON("nothing-here", &out))
}

func TestStore_RemoveIdempotent(t *testing.T) {
	s := newTestStore(t)

	s.Save(KeyUser, map[string]string{"username": "ana"})
	s.Remove(KeyUser)
	s.Remove(KeyUser)

	var out map[string]string
	assert.False(t, s.LoadJSON(KeyUser, &out))
}

func TestStore_NewCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "state")

	_, err := New(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
