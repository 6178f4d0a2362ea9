package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/devpulse/devpulse/internal/contract"
	"github.com/devpulse/devpulse/schema"
)

// PrintTrendResults outputs the trend rows, dispatching based on the output format configured.
func PrintTrendResults(trends []schema.TrendRow, cfg *contract.Config) error {
	// Create formatters using helper
	fmtFloat, fmtPct := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONResultsForTrends(trends, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVResultsForTrends(trends, cfg, fmtFloat, fmtPct); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		if err := printTrendTable(trends, cfg, fmtFloat, fmtPct); err != nil {
			return fmt.Errorf("error writing trend table output: %w", err)
		}
	}
	return nil
}

// printJSONResultsForTrends handles opening the file and calling the JSON writer.
func printJSONResultsForTrends(trends []schema.TrendRow, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForTrends(w, trends)
	}, "Wrote JSON trend results")
}

// printCSVResultsForTrends handles opening the file and calling the CSV writer.
func printCSVResultsForTrends(trends []schema.TrendRow, cfg *contract.Config, fmtFloat, fmtPct func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, trendCSVHeader, func(csvWriter *csv.Writer) error {
			return writeCSVResultsForTrends(csvWriter, trends, fmtFloat, fmtPct)
		})
	}, "Wrote CSV trend results")
}

// printTrendTable prints the trend rows in a table.
func printTrendTable(trends []schema.TrendRow, cfg *contract.Config, fmtFloat, fmtPct func(float64) string) error {
	table := tablewriter.NewWriter(os.Stdout)

	headers := []string{"Technology", "Date", "Stars", "Avg7", "Avg30", "Growth7", "Growth30", "DL/Day", "DL Avg7", "DL Growth7", "Rank", "Trend"}
	table.Header(headers)

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := GetMaxTableNameWidth(cfg)
	var data [][]string
	for _, tr := range trends {
		row := []string{
			truncateName(tr.Technology, nameWidth),
			tr.SnapshotDate,
			strconv.Itoa(tr.Stars),
			fmtFloat(tr.StarsAvg7),
			fmtFloat(tr.StarsAvg30),
			fmtPct(tr.StarsGrowth7Pct),
			fmtPct(tr.StarsGrowth30Pct),
			strconv.Itoa(tr.DownloadsDay),
			fmtFloat(tr.DownloadsAvg7),
			fmtPct(tr.DownloadsGrowth7Pct),
			strconv.Itoa(tr.DailyRank),
			contract.TrendLabel(tr.StarsTrend, cfg.UseColors),
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Printf("%d trend rows within the retention window\n", len(trends))
	return nil
}
