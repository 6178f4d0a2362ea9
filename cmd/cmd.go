// Package cmd defines the command-line interface for devpulse.
package cmd

import (
	"github.com/devpulse/devpulse/internal/contract"
	"github.com/devpulse/devpulse/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(trendsCmd)
	rootCmd.AddCommand(rankCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeClearCmd)
	storeCmd.AddCommand(storeExportCmd)
	storeCmd.AddCommand(storeMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("catalog", "", "Path to a technology catalog YAML (default: built-in catalog)")
	rootCmd.PersistentFlags().String("backend", string(schema.SQLiteBackend), "Storage backend: sqlite or mysql or postgresql")
	rootCmd.PersistentFlags().String("db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("github-token", "", "GitHub API token for authenticated requests")
	rootCmd.PersistentFlags().String("date", "", "Snapshot date in YYYY-MM-DD (default: today)")
	rootCmd.PersistentFlags().StringP("technology", "t", "", "Filter results to a single technology")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("delay", "", "Delay between API requests (e.g., 1s, 500ms)")
	rootCmd.PersistentFlags().String("timeout", "", "HTTP request timeout (e.g., 30s)")
	rootCmd.PersistentFlags().String("cron", contract.DefaultCronSpec, "Cron expression for the schedule command")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of storeMigrateCmd to Viper
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}
}
