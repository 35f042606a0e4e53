package cmd

import (
	"context"
	"os"

	"github.com/assetpack/apo/internal/app/cli"
	"github.com/assetpack/apo/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var organizeCmd = &cobra.Command{
	Use:   "organize",
	Short: "Organize raw product folders into the normalized output layout",
	Long: `Scans one level of subdirectories under the source directory, treating each
subdirectory as a product. Files are classified by extension and filename
keywords, products missing a model, buffer or binary model are skipped, and
each valid product gets an output folder with a filtered zip archive, a
binary model copy, a thumbnail copy and a merged metadata document.

With --upload, every file of each packaged product is pushed to the
configured S3 bucket under {prefix}/{product}/{filename}.`,
	Args: cobra.MaximumNArgs(0),
	Run:  executeOrganize,
}

func init() {
	RootCmd.AddCommand(organizeCmd)
	organizeCmd.Flags().StringP("source", "s", "", "source directory containing raw product folders")
	_ = organizeCmd.MarkFlagDirname("source")
	organizeCmd.Flags().StringP("output", "o", "", "output directory for organized product folders")
	_ = organizeCmd.MarkFlagDirname("output")
	organizeCmd.Flags().BoolP("upload", "u", false, "upload packaged products to the configured S3 bucket")
	organizeCmd.Flags().String("bucket", "", "S3 bucket name, overrides the configured one")
	organizeCmd.Flags().String("prefix", "", "S3 key prefix for uploaded files (default \"products\")")
}

func executeOrganize(cmd *cobra.Command, args []string) {
	opts := cli.OrganizeOptions{
		SourceDir: stringFlagOrConfig(cmd, "source", config.KeySourceDir),
		OutputDir: stringFlagOrConfig(cmd, "output", config.KeyOutputDir),
		Bucket:    cmd.Flag("bucket").Value.String(),
		Prefix:    cmd.Flag("prefix").Value.String(),
	}
	opts.Upload, _ = cmd.Flags().GetBool("upload")

	err := cli.Organize(context.Background(), opts)
	if err != nil {
		os.Exit(1)
	}
}

func stringFlagOrConfig(cmd *cobra.Command, flag, configKey string) string {
	if v := cmd.Flag(flag).Value.String(); v != "" {
		return v
	}
	return viper.GetString(configKey)
}
