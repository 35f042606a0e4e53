package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/assetpack/apo/internal/model"
	"github.com/assetpack/apo/internal/utils"
	ignore "github.com/sabhiram/go-gitignore"
)

// IgnoreFilename is the optional per-source ignore file. It uses gitignore
// syntax and is matched against paths relative to the source root.
const IgnoreFilename = ".apoignore"

// ProductListing is the raw result of scanning one product folder, before
// classification: the folder name (= product ID) and its regular files.
type ProductListing struct {
	ID    string
	Dir   string
	Files []model.FileRef
}

// Scan walks exactly one level of subdirectories under sourceDir. Each
// subdirectory is a product; regular files inside are listed. Deeper nesting
// and files directly under the source root are not considered.
//
// Directory entries are iterated in name order, so the listing is
// deterministic regardless of the underlying filesystem.
//
// Returns model.ErrSourceDirNotFound if sourceDir does not exist or is not
// a directory.
func Scan(ctx context.Context, sourceDir string) ([]ProductListing, error) {
	log := utils.GetLogger(ctx, "commands.Scan")

	sourceDir, err := utils.ExpandHome(sourceDir)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("error expanding source directory %s: %w", sourceDir, err)
	}
	stat, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn("source directory not found", "dir", abs)
			return nil, fmt.Errorf("%w: %s", model.ErrSourceDirNotFound, abs)
		}
		return nil, fmt.Errorf("error accessing source directory %s: %w", abs, err)
	}
	if !stat.IsDir() {
		log.Warn("source directory not found", "dir", abs)
		return nil, fmt.Errorf("%w: %s", model.ErrSourceDirNotFound, abs)
	}

	ignored, err := readIgnoreFile(abs)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("error reading source directory %s: %w", abs, err)
	}

	var listings []ProductListing
	for _, e := range entries {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if !e.IsDir() {
			continue
		}
		if ignored(e.Name()) {
			log.Debug("skipping ignored product folder", "product", e.Name())
			continue
		}
		listing, err := scanProductFolder(abs, e.Name(), ignored)
		if err != nil {
			return nil, err
		}
		listings = append(listings, listing)
	}

	log.Info(fmt.Sprintf("found %d product(s)", len(listings)), "dir", abs)
	return listings, nil
}

func scanProductFolder(sourceDir, id string, ignored func(string) bool) (ProductListing, error) {
	dir := filepath.Join(sourceDir, id)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ProductListing{}, fmt.Errorf("error reading product folder %s: %w", dir, err)
	}

	listing := ProductListing{ID: id, Dir: dir}
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if ignored(id + "/" + e.Name()) {
			continue
		}
		listing.Files = append(listing.Files, model.FileRef{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
		})
	}
	return listing, nil
}

// readIgnoreFile compiles the optional .apoignore at the source root into a
// match function. A missing ignore file matches nothing.
func readIgnoreFile(sourceDir string) (func(string) bool, error) {
	name := filepath.Join(sourceDir, IgnoreFilename)
	if _, err := os.Stat(name); err != nil {
		return func(string) bool { return false }, nil
	}
	gitIgnore, err := ignore.CompileIgnoreFile(name)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", name, err)
	}
	return gitIgnore.MatchesPath, nil
}
