package report

import (
	"encoding/json"
	"io"
	"time"

	designsync "github.com/yacobolo/designsync"
	"github.com/yacobolo/designsync/internal/shadows"
	"github.com/yacobolo/designsync/internal/tokens"
	"github.com/yacobolo/designsync/internal/workspace"
)

// SchemaVersion is the version of the JSON scan export.
const SchemaVersion = "1.0"

// ScanOutput is the JSON export of a scan. Tokens and shadows are lists in
// display order rather than maps so the output is stable.
type ScanOutput struct {
	Version   string               `json:"version"`
	Timestamp string               `json:"timestamp"`
	Root      string               `json:"root"`
	Summary   ScanSummary          `json:"summary"`
	Tokens    []tokens.Token       `json:"tokens"`
	Shadows   []shadows.Definition `json:"shadows"`
	Files     workspace.Files      `json:"files"`
}

// ScanSummary holds scan totals.
type ScanSummary struct {
	Tokens       int `json:"tokens"`
	Shadows      int `json:"shadows"`
	Overridden   int `json:"overridden"`
	FilesScanned int `json:"files_scanned"`
	FilesSkipped int `json:"files_skipped"`
}

// BuildScanOutput converts a scan result to its export form.
func BuildScanOutput(res *designsync.ScanResult) ScanOutput {
	defs := res.SortedShadows()
	overridden := 0
	for _, d := range defs {
		if d.IsOverridden {
			overridden++
		}
	}
	return ScanOutput{
		Version:   SchemaVersion,
		Timestamp: res.ScannedAt.Format(time.RFC3339),
		Root:      res.Root,
		Summary: ScanSummary{
			Tokens:       len(res.Tokens),
			Shadows:      len(defs),
			Overridden:   overridden,
			FilesScanned: res.Stats.Discovered - res.Stats.Skipped,
			FilesSkipped: res.Stats.Skipped,
		},
		Tokens:  res.SortedTokens(),
		Shadows: defs,
		Files:   res.Files,
	}
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
