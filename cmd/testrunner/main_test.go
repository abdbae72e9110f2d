package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectTestBinaries(t *testing.T) {
	root := t.TempDir()
	for _, p := range []string{"api/router.test", "api/config.test", "api/router/notes.txt"} {
		full := filepath.Join(root, filepath.FromSlash(p))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, nil, 0o755))
	}

	bins, err := collectTestBinaries(root)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "api", "config.test"),
		filepath.Join(root, "api", "router.test"),
	}, bins)
}

func TestTestArgs(t *testing.T) {
	assert.Equal(t, []string{"-test.v", "-test.short", "-test.count=1"}, testArgs(true, true, 1, 0))
	assert.Equal(t, []string{"-test.parallel=1"}, testArgs(false, false, 0, 1))
}

func TestBinaryDir(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "api", "router"), 0o755))

	assert.Equal(t, filepath.Join(root, "api", "router"), binaryDir(filepath.Join(root, "api", "router.test"), "/app"))
	assert.Equal(t, "/app", binaryDir(filepath.Join(root, "api", "config.test"), "/app"))
}

func TestRun_NoBinaries(t *testing.T) {
	err := run(t.Context(), options{testsDir: t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no test binaries")
}
