package cmd

import (
	"github.com/devpulse/devpulse/core"
	"github.com/devpulse/devpulse/internal/contract"
	"github.com/spf13/cobra"
)

// processCmd derives metrics from already captured raw snapshots.
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Derive metrics from captured snapshots and merge into history.",
	Long: `Resolve each source's canonical snapshot for the day, join the pair
against the catalog, derive metrics, and merge the rows into history.

Processing is idempotent: repeating it for the same date replaces that
date's rows and recomputes deltas against the prior snapshot.

Examples:
  # Process today's captured snapshots
  devpulse process

  # Reprocess an earlier day
  devpulse process --date 2026-08-30`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteProcess(rootCtx, cfg, store, techCatalog); err != nil {
			contract.LogFatal("Cannot process snapshots", err)
		}
	},
}
