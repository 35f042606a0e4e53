package commands

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/assetpack/apo/internal/model"
	"github.com/assetpack/apo/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanMissingSourceDir(t *testing.T) {
	_, err := Scan(context.Background(), filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, model.ErrSourceDirNotFound)
}

func TestScanSourceDirIsAFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "afile")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0664))
	_, err := Scan(context.Background(), file)
	assert.ErrorIs(t, err, model.ErrSourceDirNotFound)
}

func TestScanStatFailureIsNotReportedAsNotFound(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs symlink support")
	}
	// a symlink loop makes stat fail with something other than "not exist"
	link := filepath.Join(t.TempDir(), "loop")
	require.NoError(t, os.Symlink(link, link))
	_, err := Scan(context.Background(), link)
	require.Error(t, err)
	assert.NotErrorIs(t, err, model.ErrSourceDirNotFound)
}

func TestScanListsProductsSorted(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, testutils.WriteProductFiles(src, "B-002", map[string][]byte{"b.gltf": nil}))
	require.NoError(t, testutils.WriteProductFiles(src, "A-001", map[string][]byte{"a.gltf": nil, "a.bin": nil}))
	// files directly under the source root are not products
	require.NoError(t, os.WriteFile(filepath.Join(src, "stray.gltf"), []byte("x"), 0664))

	listings, err := Scan(context.Background(), src)
	require.NoError(t, err)
	if assert.Len(t, listings, 2) {
		assert.Equal(t, "A-001", listings[0].ID)
		assert.Equal(t, "B-002", listings[1].ID)
		assert.Len(t, listings[0].Files, 2)
		assert.Len(t, listings[1].Files, 1)
	}
}

func TestScanListsFilesSorted(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, testutils.WriteProductFiles(src, "P", map[string][]byte{
		"z.png": nil, "a.png": nil, "m.png": nil,
	}))

	listings, err := Scan(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, listings, 1)
	var names []string
	for _, f := range listings[0].Files {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"a.png", "m.png", "z.png"}, names)
}

func TestScanSkipsNestedDirectories(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, testutils.WriteProductFiles(src, "P", map[string][]byte{"p.gltf": nil}))
	require.NoError(t, os.MkdirAll(filepath.Join(src, "P", "nested"), 0775))
	require.NoError(t, os.WriteFile(filepath.Join(src, "P", "nested", "deep.gltf"), []byte("x"), 0664))

	listings, err := Scan(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Len(t, listings[0].Files, 1)
	assert.Equal(t, "p.gltf", listings[0].Files[0].Name)
}

func TestScanHonorsIgnoreFile(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, testutils.WriteProductFiles(src, "KEEP", map[string][]byte{"k.gltf": nil, "notes.json.bak": nil, "k.json": nil}))
	require.NoError(t, testutils.WriteProductFiles(src, "WIP-plate", map[string][]byte{"p.gltf": nil}))
	require.NoError(t, os.WriteFile(filepath.Join(src, IgnoreFilename), []byte("WIP-*\n*.bak\n"), 0664))

	listings, err := Scan(context.Background(), src)
	require.NoError(t, err)
	if assert.Len(t, listings, 1) {
		assert.Equal(t, "KEEP", listings[0].ID)
		var names []string
		for _, f := range listings[0].Files {
			names = append(names, f.Name)
		}
		assert.Equal(t, []string{"k.gltf", "k.json"}, names)
	}
}
