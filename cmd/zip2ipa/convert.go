package main

import (
	"github.com/spf13/cobra"

	"github.com/mrhapile/zip2ipa/pkg/bundler"
	"github.com/mrhapile/zip2ipa/pkg/report"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input.zip> <output.ipa>",
	Short: "Convert a ZIP archive to an IPA file",
	Long: `Scan the archive, report the Xcode project markers it contains and copy it
to the output path. The configured suffix (.ipa by default) is appended to the
output path when missing. Archives without project markers are still
converted, with a warning.`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	outcome, err := bundler.Convert(args[0], args[1], bundlerOptions()...)
	if outcome != nil {
		if werr := report.Write(cmd.OutOrStdout(), outputFormat, outcome); werr != nil {
			return werr
		}
	}
	return err
}
