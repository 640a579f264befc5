package main

import (
	"github.com/spf13/cobra"

	"github.com/yacobolo/designsync/internal/report"
)

var shadowsCmd = &cobra.Command{
	Use:   "shadows",
	Short: "List the shadows available to the project",
	Long: `List shadows from custom properties, design-token files, framework
overrides and built-in presets, in the order an editor would offer them.
Presets replaced by the project are marked with *.`,
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
			return report.WriteJSON(cmd.OutOrStdout(), res.SortedShadows())
		}
		newReporter(cmd).PrintShadows(res)
		return nil
	},
}
