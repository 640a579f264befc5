package main

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	designsync "github.com/yacobolo/designsync"
	"github.com/yacobolo/designsync/internal/report"
)

// version is set at build time via ldflags:
//
//	go build -ldflags "-X main.version=1.0.0" ./cmd/designsync
var version = "dev"

// VersionInfo is the JSON form of the version command.
type VersionInfo struct {
	Version    string   `json:"version"`
	Go         string   `json:"go"`
	ScanSchema string   `json:"scanSchema"`
	EditKinds  []string `json:"editKinds"`
}

func versionInfo() VersionInfo {
	kinds := make([]string, len(designsync.Kinds))
	for i, k := range designsync.Kinds {
		kinds[i] = string(k)
	}
	return VersionInfo{
		Version:    version,
		Go:         runtime.Version(),
		ScanSchema: report.SchemaVersion,
		EditKinds:  kinds,
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of designsync",
	Long:  `Print the designsync version, the JSON scan schema it writes and the edit kinds it accepts.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		format, err := outputFormat()
		if err != nil {
			return err
		}
		info := versionInfo()
		if format == report.FormatJSON {
			return report.WriteJSON(cmd.OutOrStdout(), info)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "designsync %s (%s)\n", info.Version, info.Go)
		fmt.Fprintf(out, "scan schema: %s\n", info.ScanSchema)
		fmt.Fprintf(out, "edit kinds:  %s\n", strings.Join(info.EditKinds, ", "))
		return nil
	},
}
