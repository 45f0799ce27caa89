package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mrhapile/zip2ipa/pkg/report"
)

var markersCmd = &cobra.Command{
	Use:   "markers",
	Short: "Print the marker table in matching order",
	RunE: func(cmd *cobra.Command, args []string) error {
		markers := appConfig.MarkerTable().Markers()
		if outputFormat != report.FormatText {
			return report.Write(cmd.OutOrStdout(), outputFormat, markers)
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ORDER\tTOKEN\tCATEGORY")
		for i, m := range markers {
			fmt.Fprintf(tw, "%d\t%s\t%s\n", i+1, m.Token, m.Category)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(markersCmd)
}
