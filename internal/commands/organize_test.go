package commands

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/assetpack/apo/internal/model"
	"github.com/assetpack/apo/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	uploaded []string
	failFor  map[string]error
}

func (f *fakeUploader) UploadProduct(_ context.Context, _, productID string) error {
	if err := f.failFor[productID]; err != nil {
		return err
	}
	f.uploaded = append(f.uploaded, productID)
	return nil
}

func completeProductFiles(id string) map[string][]byte {
	return map[string][]byte{
		id + ".gltf":          nil,
		id + ".bin":           nil,
		id + ".glb":           nil,
		"tex_basecolor.png":   nil,
		"tex_normal.png":      nil,
		"tex_roughness.png":   nil,
		id + "_thumbnail.png": nil,
	}
}

func TestOrganizerRun(t *testing.T) {
	src, out := t.TempDir(), t.TempDir()
	// A is complete, B lacks the binary model and must be skipped
	require.NoError(t, testutils.WriteProductFiles(src, "A", completeProductFiles("A")))
	require.NoError(t, testutils.WriteProductFiles(src, "B", map[string][]byte{
		"b.gltf":       nil,
		"b.bin":        nil,
		"b_normal.png": nil,
	}))

	summary, results, err := NewOrganizer(src, out, nil, fixedClock()).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, model.Summary{Total: 2, Processed: 1, Failed: 1}, summary)
	require.Len(t, results, 2)

	a := results[0]
	assert.Equal(t, "A", a.ID)
	assert.False(t, a.Skipped)
	assert.NoError(t, a.Err)
	assert.Empty(t, a.Issues)

	for _, name := range []string{"A.zip", "A.glb", "A_thumbnail.png", "A_metadata.json"} {
		_, statErr := os.Stat(filepath.Join(out, "A", name))
		assert.NoError(t, statErr, "expected output file %s", name)
	}

	b := results[1]
	assert.Equal(t, "B", b.ID)
	assert.True(t, b.Skipped)
	assert.Contains(t, b.Issues, "Missing .glb file")
	_, statErr := os.Stat(filepath.Join(out, "B"))
	assert.True(t, os.IsNotExist(statErr), "skipped product must not produce output")

	_, statErr = os.Stat(filepath.Join(out, LockFilename))
	assert.NoError(t, statErr, "lock file should exist in the output root")
}

func TestOrganizerRunUploads(t *testing.T) {
	src, out := t.TempDir(), t.TempDir()
	require.NoError(t, testutils.WriteProductFiles(src, "A", completeProductFiles("A")))
	require.NoError(t, testutils.WriteProductFiles(src, "B", completeProductFiles("B")))
	require.NoError(t, testutils.WriteProductFiles(src, "C", completeProductFiles("C")))

	up := &fakeUploader{failFor: map[string]error{"B": errors.New("bucket unreachable")}}
	summary, results, err := NewOrganizer(src, out, up, fixedClock()).Run(context.Background())
	require.NoError(t, err)

	// an upload failure does not fail the product, it stays processed
	assert.Equal(t, model.Summary{Total: 3, Processed: 3, Failed: 0, Uploaded: 2}, summary)
	assert.Equal(t, []string{"A", "C"}, up.uploaded)

	require.Len(t, results, 3)
	assert.True(t, results[0].Uploaded)
	assert.False(t, results[1].Uploaded)
	assert.NoError(t, results[1].Err)
	assert.True(t, results[2].Uploaded)
}

func TestOrganizerRunMissingSourceDir(t *testing.T) {
	out := t.TempDir()
	_, _, err := NewOrganizer(filepath.Join(t.TempDir(), "nope"), out, nil, fixedClock()).Run(context.Background())
	var errNotFound *model.ErrNotFound
	require.ErrorAs(t, err, &errNotFound)
}

func TestOrganizerRunEmptySourceDir(t *testing.T) {
	src, out := t.TempDir(), t.TempDir()
	summary, results, err := NewOrganizer(src, out, nil, fixedClock()).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.Summary{}, summary)
	assert.Empty(t, results)
}

func TestOrganizerRunCancelled(t *testing.T) {
	src, out := t.TempDir(), t.TempDir()
	require.NoError(t, testutils.WriteProductFiles(src, "A", completeProductFiles("A")))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := NewOrganizer(src, out, nil, fixedClock()).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
