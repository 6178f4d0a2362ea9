package cmd

import (
	"github.com/devpulse/devpulse/core"
	"github.com/devpulse/devpulse/internal/contract"
	"github.com/spf13/cobra"
)

// rankCmd ranks technologies against each other on a single day.
var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank technologies by stars, downloads, and growth.",
	Long: `Compare every tracked technology on the latest common snapshot date,
ranked by stars, downloads, and 30-day growth.

Examples:
  # Rank all technologies on the latest snapshot
  devpulse rank

  # Rank on a specific date
  devpulse rank --date 2026-08-30

  # Show only the top five
  devpulse rank --limit 5`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRank(rootCtx, cfg, store); err != nil {
			contract.LogFatal("Cannot compute rankings", err)
		}
	},
}
