package cli

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/assetpack/apo/internal/commands"
	"github.com/assetpack/apo/internal/config"
	"github.com/assetpack/apo/internal/model"
	"github.com/assetpack/apo/internal/store"
	"github.com/spf13/viper"
)

type OrganizeOptions struct {
	SourceDir string
	OutputDir string
	Upload    bool
	Bucket    string
	Prefix    string
}

// Organize runs the full pipeline and prints per-product results and the
// final summary. Per-product failures are reflected in the summary, not in
// the returned error.
func Organize(ctx context.Context, opts OrganizeOptions) error {
	var uploader commands.Uploader
	if opts.Upload {
		s, err := buildS3Store(opts)
		if err != nil {
			Stderrf("Could not initialize the S3 store: %v\ncheck config", err)
			return err
		}
		uploader = s
	}

	org := commands.NewOrganizer(opts.SourceDir, opts.OutputDir, uploader, time.Now)
	summary, results, err := org.Run(ctx)
	if err != nil {
		var nfErr *model.ErrNotFound
		if errors.As(err, &nfErr) {
			Stderrf("No products processed: %v", err)
		} else {
			Stderrf("organize failed: %v", err)
		}
		return err
	}

	for _, res := range results {
		printProductResult(res)
	}
	printSummary(summary, opts)
	return nil
}

func buildS3Store(opts OrganizeOptions) (*store.S3Store, error) {
	cfg := store.ConfigMap(viper.GetStringMap(config.KeyUpload))
	if cfg == nil {
		cfg = store.ConfigMap{}
	}
	if opts.Bucket != "" {
		cfg[store.KeyStoreAWSBucket] = opts.Bucket
	}
	if opts.Prefix != "" {
		cfg[store.KeyStorePrefix] = opts.Prefix
	}
	// round-trip through the JSON config validator
	raw, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	cfg, err = store.CreateS3StoreConfig(raw)
	if err != nil {
		return nil, err
	}
	return store.NewS3Store(cfg)
}

func printProductResult(res commands.ProductResult) {
	for _, issue := range res.Issues {
		Stderrf("%s: warning: %s", res.ID, issue)
	}
	switch {
	case res.Skipped:
		Stdoutf("%s: skipped (missing critical files)", res.ID)
	case res.Err != nil:
		Stdoutf("%s: failed: %v", res.ID, res.Err)
	case res.Uploaded:
		Stdoutf("%s: processed and uploaded -> %s", res.ID, res.Packaged.Dir)
	default:
		Stdoutf("%s: processed -> %s", res.ID, res.Packaged.Dir)
	}
}

func printSummary(summary model.Summary, opts OrganizeOptions) {
	Stdoutf("")
	Stdoutf("Total products:         %d", summary.Total)
	Stdoutf("Successfully processed: %d", summary.Processed)
	Stdoutf("Failed:                 %d", summary.Failed)
	if opts.Upload {
		Stdoutf("Uploaded:               %d", summary.Uploaded)
	}
	Stdoutf("")
	Stdoutf("Local output: %s", opts.OutputDir)
}
