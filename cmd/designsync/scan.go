package main

import (
	"github.com/spf13/cobra"

	"github.com/yacobolo/designsync/internal/report"
	"github.com/yacobolo/designsync/internal/tokens"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List the design tokens of the project",
	Long: `Scan stylesheets for custom properties in the default and dark blocks and
print them grouped by category. Use --format json for the full scan,
shadows and discovered files included.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		format, err := outputFormat()
		if err != nil {
			return err
		}
		res, err := scanProject(cmd)
		if err != nil {
			return err
		}

		if format == report.FormatJSON {
			return report.WriteJSON(cmd.OutOrStdout(), report.BuildScanOutput(res))
		}
		category, _ := cmd.Flags().GetString("category")
		r := newReporter(cmd)
		r.PrintTokens(res, tokens.Category(category))
		r.PrintSummary(res)
		return nil
	},
}

func init() {
	scanCmd.Flags().String("category", "", "Only tokens of this category: color|spacing|radius|shadow|typography|other")
}
