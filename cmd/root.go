package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "apo",
	Short: "Organize per-product 3D asset bundles",
	Long: `apo organizes raw per-product 3D-asset folders (glTF model, binary buffer,
textures, thumbnail, metadata) into a normalized output layout, packages a
filtered zip archive per product, merges metadata, and optionally uploads
the result to an S3 bucket.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	err := RootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
