package cmd

import (
	"github.com/devpulse/devpulse/core"
	"github.com/devpulse/devpulse/internal/contract"
	"github.com/spf13/cobra"
)

// historyCmd dumps stored per-day metric rows.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show stored per-day metric rows for a technology.",
	Long: `Print the stored history rows for one technology in date order,
including day-over-day deltas where a prior snapshot existed.

Examples:
  # Full history for one technology
  devpulse history --technology duckdb

  # History on a single date
  devpulse history --technology duckdb --date 2026-08-30

  # Export to JSON for downstream tooling
  devpulse history --technology dbt --output json --output-file dbt.json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteHistory(rootCtx, cfg, store); err != nil {
			contract.LogFatal("Cannot read history", err)
		}
	},
}
