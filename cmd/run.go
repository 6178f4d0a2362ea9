package cmd

import (
	"github.com/devpulse/devpulse/core"
	"github.com/devpulse/devpulse/internal/contract"
	"github.com/devpulse/devpulse/internal/extractor"
	"github.com/spf13/cobra"
)

// runCmd performs a full extract-and-process cycle.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Collect snapshots and merge them into history in one pass.",
	Long: `Run the full pipeline: extract snapshots from GitHub and PyPI,
validate coverage, derive metrics, and merge them into history.

This is the command a scheduler should invoke once per day. Re-running it
for the same date replaces that date's rows instead of duplicating them.

Examples:
  # Collect and process today's snapshot
  devpulse run

  # Reprocess a specific day from already captured raw records
  devpulse run --date 2026-08-30

  # Use authenticated GitHub requests for higher rate limits
  devpulse run --github-token $GITHUB_TOKEN`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		extractors := extractor.All(techCatalog, cfg)
		if err := core.ExecuteRun(rootCtx, cfg, store, extractors, techCatalog); err != nil {
			contract.LogFatal("Cannot run pipeline", err)
		}
	},
}
