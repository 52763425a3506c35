package fs_test

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pkgmerge/internal/adapters/fs"
	"go.trai.ch/pkgmerge/internal/core/domain"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), domain.PrivateFilePerm))
	return path
}

func TestStore_LoadAndRender(t *testing.T) {
	store := fs.NewStore()

	m, err := store.Load(filepath.Join("testdata", "base.json"))
	require.NoError(t, err)

	out, err := store.Render(m)
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "render", out)
}

func TestStore_RenderMerged(t *testing.T) {
	store := fs.NewStore()
	dir := t.TempDir()

	base, err := store.Load(writeFile(t, dir, "base.json", `{"name":"x","dependencies":{"b":"^1.0.0"}}`))
	require.NoError(t, err)
	extra, err := store.Load(writeFile(t, dir, "extra.json", `{"dependencies":{"a":"~2.0.0"}}`))
	require.NoError(t, err)

	merged, err := domain.MergeManifests(base, extra)
	require.NoError(t, err)

	out, err := store.Render(merged)
	require.NoError(t, err)
	assert.Equal(t, `{
  "name": "x",
  "dependencies": {
    "a": "~2.0.0",
    "b": "^1.0.0"
  },
  "devDependencies": {},
  "peerDependencies": {},
  "optionalDependencies": {}
}
`, string(out))
}

func TestStore_RenderNil(t *testing.T) {
	out, err := fs.NewStore().Render(nil)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(out))
}

func TestStore_LoadErrors(t *testing.T) {
	store := fs.NewStore()
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := store.Load(filepath.Join(dir, "missing.json"))
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrManifestReadFailed)
		assert.ErrorIs(t, err, iofs.ErrNotExist)
		assert.NotErrorIs(t, err, domain.ErrManifestParseFailed)
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := store.Load(writeFile(t, dir, "broken.json", `{"name":`))
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrManifestParseFailed)
		assert.NotErrorIs(t, err, domain.ErrManifestReadFailed)
		assert.NotErrorIs(t, err, domain.ErrManifestNotObject)
	})

	t.Run("not an object", func(t *testing.T) {
		_, err := store.Load(writeFile(t, dir, "array.json", `["a"]`))
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrManifestNotObject))
		assert.NotErrorIs(t, err, domain.ErrManifestParseFailed)
	})
}

func TestStore_SaveError(t *testing.T) {
	store := fs.NewStore()
	blocker := writeFile(t, t.TempDir(), "blocker", "")

	err := store.Save(filepath.Join(blocker, "package.json"), []byte("{}\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrManifestWriteFailed)
}

func TestStore_Save(t *testing.T) {
	store := fs.NewStore()
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out", "package.json")

	require.NoError(t, store.Save(path, []byte("{}\n")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(domain.FilePerm), info.Mode().Perm())

	t.Run("overwrites and leaves no temp files", func(t *testing.T) {
		require.NoError(t, store.Save(path, []byte("{\"a\": 1}\n")))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "{\"a\": 1}\n", string(data))

		entries, err := os.ReadDir(filepath.Dir(path))
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})
}
