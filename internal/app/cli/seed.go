package cli

import (
	"context"

	"github.com/assetpack/apo/internal/commands"
)

// Seed generates sample products and prints what was created.
func Seed(ctx context.Context, dir string, count int) error {
	ids, err := commands.Seed(ctx, dir, count)
	for _, id := range ids {
		Stdoutf("created sample product %s", id)
	}
	if err != nil {
		Stderrf("seed failed: %v", err)
		return err
	}
	Stdoutf("")
	Stdoutf("Sample data created in: %s", dir)
	return nil
}
