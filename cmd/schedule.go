package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/devpulse/devpulse/core"
	"github.com/devpulse/devpulse/internal/contract"
	"github.com/devpulse/devpulse/internal/extractor"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

// scheduleCmd runs the pipeline on a cron schedule until interrupted.
var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the pipeline on a recurring cron schedule.",
	Long: `Start a long-lived scheduler that performs a full extract-and-process
cycle on a cron schedule. Stops on SIGINT or SIGTERM.

A firing that arrives while a previous run is still in flight is skipped,
so a slow day never stacks overlapping runs.

Examples:
  # Run every day at midnight (the default)
  devpulse schedule

  # Run every six hours
  devpulse schedule --cron "0 */6 * * *"`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		extractors := extractor.All(techCatalog, cfg)

		// Skip a firing if the previous run is still in flight.
		var running sync.Mutex
		runOnce := func() {
			if !running.TryLock() {
				contract.LogWarn("Skipping scheduled run", fmt.Errorf("previous run still in progress"))
				return
			}
			defer running.Unlock()

			runCfg := cfg.Clone()
			runCfg.ProcessDate = time.Now().UTC()
			runCfg.Date = ""
			fmt.Printf("Starting scheduled run for %s\n", runCfg.ProcessDate.Format("2006-01-02"))
			if err := core.ExecuteRun(rootCtx, runCfg, store, extractors, techCatalog); err != nil {
				contract.LogWarn("Scheduled run failed", err)
				return
			}
			fmt.Println("Scheduled run completed successfully")
		}

		c := cron.New()
		if _, err := c.AddFunc(cfg.CronSpec, runOnce); err != nil {
			contract.LogFatal("Invalid cron expression", err)
		}

		c.Start()
		fmt.Printf("Scheduler started with schedule: %s\n", cfg.CronSpec)

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		fmt.Println("Shutting down scheduler...")
		<-c.Stop().Done()
	},
}
