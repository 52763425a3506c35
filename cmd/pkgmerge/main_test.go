package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/grindlemire/graft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pkgmerge/internal/app"
	"go.trai.ch/pkgmerge/internal/core/domain"
)

func graftProvider(ctx context.Context) (*app.Components, error) {
	c, _, err := graft.ExecuteFor[*app.Components](ctx)
	return c, err
}

func TestRun_Merge(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	dir := t.TempDir()
	base := filepath.Join(dir, "base.json")
	extra := filepath.Join(dir, "extra.json")
	out := filepath.Join(dir, "package.json")
	require.NoError(t, os.WriteFile(base, []byte(`{"name":"demo","dependencies":{"react":"^18.2.0"}}`), domain.PrivateFilePerm))
	require.NoError(t, os.WriteFile(extra, []byte(`{"dependencies":{"react":"^18.3.1","zod":"^3.0.0"}}`), domain.PrivateFilePerm))

	var stdout, stderr bytes.Buffer
	code := run(t.Context(), []string{"merge", base, extra, out}, &stdout, &stderr, graftProvider)
	require.Equal(t, 0, code, stderr.String())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, `{
  "name": "demo",
  "dependencies": {
    "react": "^18.3.1",
    "zod": "^3.0.0"
  },
  "devDependencies": {},
  "peerDependencies": {},
  "optionalDependencies": {}
}
`, string(data))

	t.Run("check passes on fresh output", func(t *testing.T) {
		code := run(t.Context(), []string{"check", base, extra, out}, &stdout, &stderr, graftProvider)
		assert.Equal(t, 0, code, stderr.String())
	})

	t.Run("check fails on stale output", func(t *testing.T) {
		require.NoError(t, os.WriteFile(out, []byte("{}\n"), domain.PrivateFilePerm))
		stderr.Reset()

		code := run(t.Context(), []string{"check", base, extra, out}, &stdout, &stderr, graftProvider)
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr.String(), "Error: check failed")
		assert.Contains(t, stderr.String(), domain.ErrOutputOutOfDate.Error())
	})
}

func TestRun_MissingInput(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	dir := t.TempDir()

	var stdout, stderr bytes.Buffer
	code := run(t.Context(), []string{"merge", filepath.Join(dir, "nope.json"), filepath.Join(dir, "extra.json")},
		&stdout, &stderr, graftProvider)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), domain.ErrManifestReadFailed.Error())
}

func TestRun_ProviderError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(t.Context(), []string{"merge"}, &stdout, &stderr, func(context.Context) (*app.Components, error) {
		return nil, errors.New("boom")
	})

	assert.Equal(t, 1, code)
	assert.Equal(t, "Error: boom\n", stderr.String())
}
