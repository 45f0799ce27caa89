package main

import (
	"github.com/spf13/cobra"

	"github.com/mrhapile/zip2ipa/pkg/bundler"
	"github.com/mrhapile/zip2ipa/pkg/report"
)

var detectCmd = &cobra.Command{
	Use:   "detect <input.zip>",
	Short: "List archive entries and detect Xcode project files",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bundler.ValidateInput(args[0], appConfig.Conversion.AllowedExtensions); err != nil {
			return err
		}
		result, err := bundler.Detect(args[0], bundlerOptions()...)
		if err != nil {
			return err
		}
		return report.Write(cmd.OutOrStdout(), outputFormat, result)
	},
}

func init() {
	rootCmd.AddCommand(detectCmd)
}
