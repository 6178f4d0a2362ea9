package cmd

import (
	"github.com/devpulse/devpulse/core"
	"github.com/devpulse/devpulse/internal/contract"
	"github.com/devpulse/devpulse/internal/extractor"
	"github.com/spf13/cobra"
)

// extractCmd collects raw snapshots without processing them.
var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Collect raw GitHub and PyPI snapshots for the catalog.",
	Long: `Fetch one raw snapshot per technology from each source and store
the JSON payloads without deriving metrics.

A technology that cannot be fetched is skipped with a warning; the batch
never fails because one repository or package is unavailable.

Examples:
  # Capture today's raw snapshots
  devpulse extract

  # Capture with a slower request cadence
  devpulse extract --delay 2s`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		extractors := extractor.All(techCatalog, cfg)
		if _, err := core.ExecuteExtract(rootCtx, cfg, store, extractors); err != nil {
			contract.LogFatal("Cannot extract snapshots", err)
		}
	},
}
