package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/devpulse/devpulse/internal/catalog"
	"github.com/devpulse/devpulse/internal/contract"
	"github.com/devpulse/devpulse/internal/histstore"
	"github.com/devpulse/devpulse/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// store is the persistence layer opened during shared setup.
var store *histstore.SQLStore

// techCatalog holds the loaded technology catalog for the current invocation.
var techCatalog []schema.Technology

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "devpulse",
	Short:              "Track adoption trends for Python data engineering technologies.",
	Long:               `DevPulse collects GitHub and PyPI snapshots on a schedule and turns them into longitudinal adoption metrics.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		// Set config file name and paths
		viper.SetConfigName(".devpulse") // Name of config file (without extension)
		viper.SetConfigType("yaml")      // We'll use YAML format
		viper.AddConfigPath(".")         // Look in the current directory
		viper.AddConfigPath("$HOME")     // Look in the home directory
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("DEVPULSE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("limit", contract.DefaultResultLimit)
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("backend", schema.SQLiteBackend)
	viper.SetDefault("db-connect", "")
	viper.SetDefault("color", "yes")
	viper.SetDefault("cron", contract.DefaultCronSpec)
}

// sharedSetup unmarshals config, runs validation, and opens the store.
func sharedSetup(_ context.Context, _ *cobra.Command, _ []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Run all validation and complex parsing.
	// This function now populates the global 'cfg' from 'input'.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}

	// 4. Load the technology catalog.
	techs, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	techCatalog = techs

	// 5. Open the persistence layer with validated config.
	s, err := histstore.Open(cfg.Backend, cfg.DBConnect)
	if err != nil {
		return fmt.Errorf("failed to initialize persistence: %w", err)
	}
	store = s

	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// loadConfigFile handles config file loading logic common to all setup functions.
func loadConfigFile() error {
	// Handle config file
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".devpulse")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	// Load config file if present
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
