package main

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	designsync "github.com/yacobolo/designsync"
	"github.com/yacobolo/designsync/internal/report"
)

// commandTimeout bounds one-shot commands.
const commandTimeout = 2 * time.Minute

func outputFormat() (report.Format, error) {
	return report.ParseFormat(getStringWithFallback("format", "format", string(report.FormatTable)))
}

func newReporter(cmd *cobra.Command) *report.Reporter {
	return report.NewReporter(cmd.OutOrStdout(), report.ShouldUseColors(getBoolWithFallback("color", "color", false), os.Stdout))
}

// scanProject builds an engine and scans once.
func scanProject(cmd *cobra.Command) (*designsync.ScanResult, error) {
	engine, err := newEngine(newLogger(cmd.ErrOrStderr()))
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()
	return engine.Scan(ctx)
}
