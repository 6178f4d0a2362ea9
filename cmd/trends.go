package cmd

import (
	"github.com/devpulse/devpulse/core"
	"github.com/devpulse/devpulse/internal/contract"
	"github.com/spf13/cobra"
)

// trendsCmd reports derived trend metrics from stored history.
var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Show growth and momentum metrics for tracked technologies.",
	Long: `Compute trend metrics from stored history: trailing 7-row and 30-row
star averages, star and download growth percentages, same-day popularity
rank, and trend direction against each technology's own 7-row average.

Rows older than the retention window are excluded from the calculation
but never deleted from the store.

Examples:
  # Trends for every tracked technology
  devpulse trends

  # Trends for one technology
  devpulse trends --technology duckdb

  # Trends as of a specific snapshot date
  devpulse trends --date 2026-08-30

  # Export trends to CSV
  devpulse trends --output csv --output-file trends.csv`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteTrends(rootCtx, cfg, store); err != nil {
			contract.LogFatal("Cannot compute trends", err)
		}
	},
}
