package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "organized_products")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "A"), 0775))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "A", "A.zip"), []byte("zip"), 0664))

	removed, err := Clean(context.Background(), dir)
	require.NoError(t, err)
	assert.True(t, removed)
	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}

func TestCleanMissingDir(t *testing.T) {
	removed, err := Clean(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestCleanNotADir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0664))
	_, err := Clean(context.Background(), file)
	assert.Error(t, err)
}
