package cli

import (
	"bufio"
	"context"
	"os"
	"strings"

	"github.com/assetpack/apo/internal/commands"
)

// Clean removes the output directory after an interactive confirmation,
// unless force is set.
func Clean(ctx context.Context, outputDir string, force bool) error {
	if !force {
		Stdoutf("This will delete the output directory %s.", outputDir)
		if !askConfirmation("Continue? (y/n): ") {
			Stdoutf("Cancelled.")
			return nil
		}
	}
	removed, err := commands.Clean(ctx, outputDir)
	if err != nil {
		Stderrf("clean failed: %v", err)
		return err
	}
	if removed {
		Stdoutf("Removed output directory %s", outputDir)
	} else {
		Stdoutf("Nothing to remove (already clean)")
	}
	return nil
}

func askConfirmation(prompt string) bool {
	_, _ = os.Stdout.WriteString(prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.ToLower(strings.TrimSpace(answer)) == "y"
}
