package cmd

import (
	"context"
	"os"

	"github.com/assetpack/apo/internal/app/cli"
	"github.com/assetpack/apo/internal/config"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate sample product folders for trying apo out",
	Long: `Creates sample products in the source directory, each with a minimal glTF
model, binary buffer, packed binary model, three textures, a thumbnail and
sidecar metadata. Useful for trying the organize command without real data.`,
	Args: cobra.MaximumNArgs(0),
	Run:  executeSeed,
}

func init() {
	RootCmd.AddCommand(seedCmd)
	seedCmd.Flags().StringP("directory", "d", "", "directory to create sample products in")
	_ = seedCmd.MarkFlagDirname("directory")
	seedCmd.Flags().IntP("products", "n", 3, "number of sample products to create")
}

func executeSeed(cmd *cobra.Command, args []string) {
	dir := stringFlagOrConfig(cmd, "directory", config.KeySourceDir)
	count, _ := cmd.Flags().GetInt("products")

	err := cli.Seed(context.Background(), dir, count)
	if err != nil {
		os.Exit(1)
	}
}
