package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/assetpack/apo/internal/model"
	"github.com/assetpack/apo/internal/utils"
	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

var ErrOutputLocked = errors.New("output directory is locked by another process")

const (
	outputLockTimeout    = 10 * time.Second
	outputLockRetryDelay = 13 * time.Millisecond
	LockFilename         = ".apo.lock"
)

// Uploader pushes a packaged product folder to a remote object store.
// Implementations log and skip individual file failures; the returned error
// reports only folder-level failures.
type Uploader interface {
	UploadProduct(ctx context.Context, dir, productID string) error
}

// ProductResult records what happened to one product during a run.
type ProductResult struct {
	ID       string
	Issues   []string
	Skipped  bool
	Err      error
	Packaged model.PackagedProduct
	Uploaded bool
}

// Organizer drives the pipeline: scan, then per product classify, validate,
// package and optionally upload, strictly sequentially in scan order.
type Organizer struct {
	sourceDir string
	outputDir string
	uploader  Uploader // nil disables uploading
	now       Now
}

func NewOrganizer(sourceDir, outputDir string, uploader Uploader, now Now) *Organizer {
	return &Organizer{
		sourceDir: sourceDir,
		outputDir: outputDir,
		uploader:  uploader,
		now:       now,
	}
}

// Run processes all products found under the source directory and returns
// the per-product results along with the summary counters. Per-product
// failures do not abort the run; the only early exits are a missing source
// directory, a held output lock, and context cancellation.
func (o *Organizer) Run(ctx context.Context) (model.Summary, []ProductResult, error) {
	ctx = utils.WithLogger(ctx, utils.GetLogger(ctx, "").With("run", uuid.NewString()))
	log := utils.GetLogger(ctx, "commands.Organizer")

	listings, err := Scan(ctx, o.sourceDir)
	if err != nil {
		return model.Summary{}, nil, err
	}

	unlock, err := o.lockOutputDir(ctx)
	defer unlock()
	if err != nil {
		return model.Summary{}, nil, err
	}

	packager := NewPackager(o.outputDir, o.now)

	summary := model.Summary{Total: len(listings)}
	var results []ProductResult
	for _, listing := range listings {
		select {
		case <-ctx.Done():
			return summary, results, ctx.Err()
		default:
		}

		res := o.processProduct(ctx, packager, listing)
		if res.Skipped || res.Err != nil {
			summary.Failed++
		} else {
			summary.Processed++
			if res.Uploaded {
				summary.Uploaded++
			}
		}
		results = append(results, res)
	}

	log.Info("run finished", "total", summary.Total, "processed", summary.Processed, "failed", summary.Failed, "uploaded", summary.Uploaded)
	return summary, results, nil
}

func (o *Organizer) processProduct(ctx context.Context, packager *Packager, listing ProductListing) ProductResult {
	log := utils.GetLogger(ctx, "commands.Organizer")
	res := ProductResult{ID: listing.ID}

	prod := Classify(listing)
	vr := Validate(prod.Files)
	res.Issues = vr.Issues
	for _, issue := range vr.Issues {
		log.Warn("validation issue", "product", prod.ID, "issue", issue)
	}
	if !vr.Usable {
		log.Error("skipping product: missing critical files", "product", prod.ID)
		res.Skipped = true
		return res
	}

	pp, err := packager.Package(ctx, prod)
	if err != nil {
		log.Error("packaging failed", "product", prod.ID, "error", err)
		res.Err = err
		return res
	}
	res.Packaged = pp

	if o.uploader != nil {
		if err := o.uploader.UploadProduct(ctx, pp.Dir, prod.ID); err != nil {
			log.Error("upload failed", "product", prod.ID, "error", err)
		} else {
			res.Uploaded = true
		}
	}
	return res
}

// lockOutputDir guards the output tree against a second concurrent run.
// Creates the output directory if absent.
func (o *Organizer) lockOutputDir(ctx context.Context) (func(), error) {
	if err := os.MkdirAll(o.outputDir, defaultDirPermissions); err != nil {
		return func() {}, err
	}
	fl := flock.New(filepath.Join(o.outputDir, LockFilename))
	ctx, cancel := context.WithTimeout(ctx, outputLockTimeout)
	unlock := func() {
		cancel()
		_ = fl.Unlock()
	}
	locked, err := fl.TryLockContext(ctx, outputLockRetryDelay)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return unlock, fmt.Errorf("%w: %s", ErrOutputLocked, o.outputDir)
		}
		return unlock, err
	}
	if !locked {
		return unlock, fmt.Errorf("%w: %s", ErrOutputLocked, o.outputDir)
	}
	return unlock, nil
}
