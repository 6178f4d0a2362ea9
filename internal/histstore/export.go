package histstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/devpulse/devpulse/core"
	"github.com/devpulse/devpulse/internal/parquet"
)

// ExecuteExport writes the full history table and the trend rows computed
// from it to a pair of Parquet files next to outputFile.
func ExecuteExport(ctx context.Context, store *SQLStore, outputFile string, asOf time.Time) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	status, err := store.GetStatus(ctx)
	if err != nil {
		return fmt.Errorf("failed to get store status: %w", err)
	}
	if status.TableSizes[historyTable] == 0 {
		return errors.New("no history data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Technologies tracked: %d\n", status.Technologies)
	fmt.Printf("History rows: %d\n", status.TableSizes[historyTable])

	history, err := store.GetAllHistory(ctx)
	if err != nil {
		return fmt.Errorf("failed to retrieve history: %w", err)
	}

	trends := core.TrendsFromHistory(history, asOf)

	historyFile := outputFile + ".history.parquet"
	historyRecords := parquet.ConvertHistoryRecords(history)
	if err := parquet.WriteHistoryParquet(historyRecords, historyFile); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	fmt.Printf("Exported %d history rows to: %s\n", len(historyRecords), historyFile)

	trendsFile := outputFile + ".trends.parquet"
	trendRecords := parquet.ConvertTrendRecords(trends)
	if err := parquet.WriteTrendsParquet(trendRecords, trendsFile); err != nil {
		return fmt.Errorf("failed to write trends: %w", err)
	}
	fmt.Printf("Exported %d trend rows to: %s\n", len(trendRecords), trendsFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
