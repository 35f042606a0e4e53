package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/assetpack/apo/internal/utils"
)

// Clean removes the output directory so the next run starts fresh. Returns
// whether anything was removed; a missing directory is not an error.
func Clean(ctx context.Context, outputDir string) (bool, error) {
	log := utils.GetLogger(ctx, "commands.Clean")

	outputDir, err := utils.ExpandHome(outputDir)
	if err != nil {
		return false, err
	}
	stat, err := os.Stat(outputDir)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("could not check output directory %s: %w", outputDir, err)
	}
	if !stat.IsDir() {
		return false, fmt.Errorf("%s is not a directory", outputDir)
	}
	if err := os.RemoveAll(outputDir); err != nil {
		return false, fmt.Errorf("could not remove output directory %s: %w", outputDir, err)
	}
	log.Info("removed output directory", "dir", outputDir)
	return true, nil
}
