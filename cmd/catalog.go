package cmd

import (
	"github.com/devpulse/devpulse/core"
	"github.com/devpulse/devpulse/internal/contract"
	"github.com/spf13/cobra"
)

// catalogCmd lists the technologies a run would track.
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the tracked technologies and their source identities.",
	Long: `Print the technology catalog: each entry's name, GitHub repository,
and PyPI package.

Examples:
  # Show the built-in catalog
  devpulse catalog

  # Show a custom catalog
  devpulse catalog --catalog ./my-catalog.yaml`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCatalog(cfg, techCatalog); err != nil {
			contract.LogFatal("Cannot list catalog", err)
		}
	},
}
