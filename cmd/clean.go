package cmd

import (
	"context"
	"os"

	"github.com/assetpack/apo/internal/app/cli"
	"github.com/assetpack/apo/internal/config"
	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the output directory to start fresh",
	Long: `Removes the organized output directory so the next organize run starts from
a clean slate. Asks for confirmation unless --force is given.`,
	Args: cobra.MaximumNArgs(0),
	Run:  executeClean,
}

func init() {
	RootCmd.AddCommand(cleanCmd)
	cleanCmd.Flags().StringP("output", "o", "", "output directory to remove")
	_ = cleanCmd.MarkFlagDirname("output")
	cleanCmd.Flags().BoolP("force", "f", false, "do not ask for confirmation")
}

func executeClean(cmd *cobra.Command, args []string) {
	outputDir := stringFlagOrConfig(cmd, "output", config.KeyOutputDir)
	force, _ := cmd.Flags().GetBool("force")

	err := cli.Clean(context.Background(), outputDir, force)
	if err != nil {
		os.Exit(1)
	}
}
