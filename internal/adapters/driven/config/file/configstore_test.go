package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarry-labs/passage/internal/core/domain"
)

func newTestStore(t *testing.T) *ConfigStore {
	t.Helper()
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestNewConfigStore_EmptyDirectory(t *testing.T) {
	store := newTestStore(t)
	assert.Contains(t, store.Path(), "config.toml")
	_, ok := store.Get("anything")
	assert.False(t, ok)
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Set("default_course", "hvac-101"))
	assert.Equal(t, "hvac-101", store.GetString("default_course"))

	require.NoError(t, store.Set("chunking.target_size", 800))
	assert.Equal(t, 800, store.GetInt("chunking.target_size"))

	require.NoError(t, store.Set("verbose", true))
	assert.True(t, store.GetBool("verbose"))
}

func TestConfigStore_TypedGettersOnWrongType(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("key", "string value"))

	assert.Equal(t, 0, store.GetInt("key"))
	assert.False(t, store.GetBool("key"))
	assert.Nil(t, store.GetStringSlice("key"))
	assert.Empty(t, store.GetString("missing"))
}

func TestConfigStore_SetPersistsImmediately(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set("default_course", "hvac-101"))

	reopened, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "hvac-101", reopened.GetString("default_course"))
}

func TestConfigStore_LoadFlattensNestedTables(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(configPath, []byte(`
default_course = "hvac-101"

[chunking]
target_size = 800
overlap = 120
preserve_tables = false

[watch]
extensions = ["md", "txt"]
`), 0o600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "hvac-101", store.GetString("default_course"))
	assert.Equal(t, 800, store.GetInt("chunking.target_size"))
	assert.Equal(t, 120, store.GetInt("chunking.overlap"))
	assert.False(t, store.GetBool("chunking.preserve_tables"))
	assert.Equal(t, []string{"md", "txt"}, store.GetStringSlice("watch.extensions"))
}

func TestFlattenMap(t *testing.T) {
	nested := map[string]any{
		"top": "value",
		"outer": map[string]any{
			"inner": int64(1),
			"deep": map[string]any{
				"key": true,
			},
		},
	}

	flat := flattenMap(nested, "")
	assert.Equal(t, "value", flat["top"])
	assert.Equal(t, int64(1), flat["outer.inner"])
	assert.Equal(t, true, flat["outer.deep.key"])
	assert.Len(t, flat, 3)
}

func TestConfigStore_ChunkingOptions_Defaults(t *testing.T) {
	store := newTestStore(t)

	opts := store.ChunkingOptions()
	assert.Equal(t, domain.DefaultChunkingOptions(), opts)
}

func TestConfigStore_ChunkingOptions_Overrides(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(configPath, []byte(`
[chunking]
target_size = 600
max_size = 900
overlap = 80
preserve_tables = false
`), 0o600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	opts := store.ChunkingOptions()
	assert.Equal(t, 600, opts.TargetChunkSize)
	assert.Equal(t, 900, opts.MaxChunkSize)
	assert.Equal(t, 80, opts.OverlapSize)
	assert.False(t, opts.PreserveTables)
	assert.Equal(t, domain.DefaultMinChunkSize, opts.MinChunkSize, "unset keys keep defaults")
	assert.True(t, opts.PreserveLists)
}
