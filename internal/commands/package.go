package commands

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/assetpack/apo/internal/model"
	"github.com/assetpack/apo/internal/utils"
)

// maxArchiveTextures caps how many textures go into the product archive,
// however many the source folder holds.
const maxArchiveTextures = 3

const (
	defaultDirPermissions  = 0775
	defaultFilePermissions = 0664
)

// Packager writes the normalized output folder for valid products.
type Packager struct {
	outputDir string
	now       Now
}

func NewPackager(outputDir string, now Now) *Packager {
	return &Packager{outputDir: outputDir, now: now}
}

// Package writes outputDir/{id}/ for a product that passed validation:
// the filtered archive, the binary model copy, the thumbnail copy, and the
// merged metadata document. Creating the output folder and overwriting
// existing files makes a rerun idempotent.
//
// If archive creation fails, packaging aborts at that step: no copies or
// metadata are attempted and whatever was already written stays in place.
func (p *Packager) Package(ctx context.Context, prod *model.Product) (model.PackagedProduct, error) {
	log := utils.GetLogger(ctx, "commands.Packager")

	dir := filepath.Join(p.outputDir, prod.ID)
	if err := os.MkdirAll(dir, defaultDirPermissions); err != nil {
		return model.PackagedProduct{}, fmt.Errorf("could not create output folder %s: %w", dir, err)
	}

	pp := model.PackagedProduct{ProductID: prod.ID, Dir: dir}

	archiveName := prod.ID + ".zip"
	if err := p.createArchive(filepath.Join(dir, archiveName), prod); err != nil {
		return model.PackagedProduct{}, fmt.Errorf("could not create archive for %s: %w", prod.ID, err)
	}
	pp.Archive = archiveName
	log.Debug("created archive", "product", prod.ID, "file", archiveName)

	// validation guarantees a binary model is present
	glb, _ := prod.Files.First(model.CategoryBinaryModel)
	binaryName := prod.ID + ".glb"
	if err := copyFile(glb.Path, filepath.Join(dir, binaryName)); err != nil {
		return model.PackagedProduct{}, fmt.Errorf("could not copy binary model for %s: %w", prod.ID, err)
	}
	pp.Binary = binaryName

	thumbName, err := p.copyThumbnail(ctx, prod, dir)
	if err != nil {
		return model.PackagedProduct{}, err
	}
	pp.Thumbnail = thumbName

	metadataName := prod.ID + "_metadata.json"
	raw, err := renderMetadata(ctx, prod, p.now)
	if err != nil {
		return model.PackagedProduct{}, fmt.Errorf("could not render metadata for %s: %w", prod.ID, err)
	}
	if err := utils.AtomicWriteFile(filepath.Join(dir, metadataName), raw, defaultFilePermissions); err != nil {
		return model.PackagedProduct{}, fmt.Errorf("could not write metadata for %s: %w", prod.ID, err)
	}
	pp.Metadata = metadataName

	return pp, nil
}

// createArchive writes the product zip: the first model file, the first
// buffer file, and up to the first three textures, all deflate-compressed
// under their original base names.
func (p *Packager) createArchive(zipPath string, prod *model.Product) error {
	f, err := os.OpenFile(zipPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, defaultFilePermissions)
	if err != nil {
		return err
	}
	defer f.Close()

	zw := zip.NewWriter(f)

	var entries []model.FileRef
	if m, ok := prod.Files.First(model.CategoryModel); ok {
		entries = append(entries, m)
	}
	if b, ok := prod.Files.First(model.CategoryBuffer); ok {
		entries = append(entries, b)
	}
	textures := prod.Files[model.CategoryTexture]
	if len(textures) > maxArchiveTextures {
		textures = textures[:maxArchiveTextures]
	}
	entries = append(entries, textures...)

	for _, e := range entries {
		if err := addZipEntry(zw, e, p.now()); err != nil {
			_ = zw.Close()
			return err
		}
	}
	return zw.Close()
}

func addZipEntry(zw *zip.Writer, ref model.FileRef, modified time.Time) error {
	src, err := os.Open(ref.Path)
	if err != nil {
		return err
	}
	defer src.Close()

	header := &zip.FileHeader{
		Name:     ref.Name,
		Method:   zip.Deflate,
		Modified: modified,
	}
	w, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("failed to create zip entry for %s: %w", ref.Name, err)
	}
	_, err = io.Copy(w, src)
	return err
}

// copyThumbnail copies the first classified thumbnail into the output
// folder as {id}_thumbnail.png. Without a classified thumbnail, it falls
// back to the first .jpg among the product's scanned files; because an
// untagged .jpg would have been classified as the thumbnail, those all sit
// in the texture bucket. Files excluded from the scan never become a
// fallback. If no source exists, nothing is copied and the returned name
// is empty.
func (p *Packager) copyThumbnail(ctx context.Context, prod *model.Product, dir string) (string, error) {
	src, ok := prod.Files.First(model.CategoryThumbnail)
	if !ok {
		jpg, found := findFirstJpg(prod.Files)
		if !found {
			utils.GetLogger(ctx, "commands.Packager").Warn("no thumbnail source found", "product", prod.ID)
			return "", nil
		}
		src = jpg
	}

	// renamed to .png regardless of the original extension
	name := prod.ID + "_thumbnail.png"
	if err := copyFile(src.Path, filepath.Join(dir, name)); err != nil {
		return "", fmt.Errorf("could not copy thumbnail for %s: %w", prod.ID, err)
	}
	return name, nil
}

func findFirstJpg(files model.Classification) (model.FileRef, bool) {
	for _, f := range files[model.CategoryTexture] {
		if strings.ToLower(filepath.Ext(f.Name)) == ".jpg" {
			return f, true
		}
	}
	return model.FileRef{}, false
}

func copyFile(from, to string) error {
	src, err := os.Open(from)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.OpenFile(to, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, defaultFilePermissions)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}
