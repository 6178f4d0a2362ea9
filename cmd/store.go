package cmd

import (
	"fmt"
	"time"

	"github.com/devpulse/devpulse/internal/contract"
	"github.com/devpulse/devpulse/internal/histstore"
	"github.com/devpulse/devpulse/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// storeSetup loads minimal configuration needed for store operations.
// This is used by commands that need store access without full shared setup.
func storeSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend, connStr, err := storeConnectionConfig()
	if err != nil {
		return err
	}

	s, err := histstore.Open(backend, connStr)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	store = s

	cfg.Backend = backend
	cfg.DBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")

	return nil
}

// storeSetupWrapper wraps storeSetup to provide PreRunE for store commands.
func storeSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeSetup()
}

// storeMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT open the store or create tables,
// allowing migrations to run on a fresh database.
func storeMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend, connStr, err := storeConnectionConfig()
	if err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetDefaultDBFilePath()
	}

	cfg.Backend = backend
	cfg.DBConnect = connStr

	return nil
}

// storeMigrateSetupWrapper wraps storeMigrateSetup to provide PreRunE for migrate command.
func storeMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeMigrateSetup()
}

// storeConnectionConfig resolves and validates backend settings from Viper.
func storeConnectionConfig() (schema.DatabaseBackend, string, error) {
	backendStr := viper.GetString("backend")
	connStr := viper.GetString("db-connect")

	backend := schema.DatabaseBackend(backendStr)
	if backend == "" {
		backend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidBackends[backend]; !ok {
		return "", "", fmt.Errorf("invalid backend %q: must be sqlite, mysql or postgresql", backendStr)
	}
	if backend != schema.SQLiteBackend && connStr == "" {
		return "", "", fmt.Errorf("backend %s requires --db-connect", backend)
	}

	return backend, connStr, nil
}

// storeCmd focused on history data management.
//
// Note: Store subcommands use minimal initialization (storeSetup) instead of
// the full sharedSetup used by pipeline commands. This avoids catalog loading
// and extractor configuration for simple store operations.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage stored history, raw snapshots, and exports",
	Long: `Manage the persistent data collected by the pipeline.

DevPulse stores three kinds of data:
- Raw snapshots - the JSON payloads captured from GitHub and PyPI
- History rows - derived per-day metrics, one row per technology per date
- Run metadata - timestamps and counts for each pipeline run

Supported backends: SQLite (default), MySQL, PostgreSQL

Subcommands:
  status  - Show storage statistics
  export  - Export data to Parquet for analytics
  clear   - Remove all stored data
  migrate - Run database schema migrations

Examples:
  # Check storage status
  devpulse store status

  # Export for analysis in pandas/DuckDB
  devpulse store export --output-file devpulse-data.parquet`,
}

// storeStatusCmd shows store status.
var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display storage statistics and connection details",
	Long: `Show detailed information about the persistence layer.

Displays:
- Backend type and location
- Number of technologies tracked
- Oldest and newest snapshot dates
- Database table sizes

Examples:
  # Check storage status
  devpulse store status`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := store.GetStatus(rootCtx)
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		histstore.PrintStatus(status)
	},
}

// storeClearCmd clears all stored data.
var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored snapshots, history, and run metadata",
	Long: `Delete all stored raw snapshots, history rows, and run records.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  devpulse store export --output-file backup.parquet
  devpulse store clear`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := store.Clear(rootCtx); err != nil {
			contract.LogFatal("Failed to clear store data", err)
		}
		fmt.Println("Store data cleared successfully.")
	},
}

// storeExportCmd exports history and trends to Parquet files.
var storeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export history and trends to Parquet for BI tools and analytics",
	Long: `Export all stored data to Parquet format for use with analytics tools.

Exports two datasets:
- History rows - per-day metrics and deltas for every technology
- Trend rows - growth and ranking metrics computed at export time

Requires: --output-file parameter

Examples:
  # Export all data
  devpulse store export --output-file devpulse-data.parquet

  # Use with DuckDB for analysis
  devpulse store export --output-file data.parquet
  duckdb -c "SELECT * FROM read_parquet('data.parquet.history.parquet') LIMIT 10"`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := histstore.ExecuteExport(rootCtx, store, cfg.OutputFile, time.Now().UTC()); err != nil {
			contract.LogFatal("Failed to export store data", err)
		}
	},
}

// storeMigrateCmd runs database migrations for the store.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the history store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  devpulse store migrate

  # Migrate to specific version
  devpulse store migrate --target-version 1

  # Rollback to previous version
  devpulse store migrate --target-version 0`,
	PreRunE: storeMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := histstore.MigrateStore(cfg.Backend, cfg.DBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
