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

// PrintHistoryResults outputs stored history rows, dispatching based on the output format configured.
func PrintHistoryResults(rows []schema.HistoryRow, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResultsForHistory(w, rows)
		}, "Wrote JSON history results")
		if err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, historyCSVHeader, func(csvWriter *csv.Writer) error {
				return writeCSVResultsForHistory(csvWriter, rows, fmtFloat)
			})
		}, "Wrote CSV history results")
		if err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		if err := printHistoryTable(rows, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing history table output: %w", err)
		}
	}
	return nil
}

// printHistoryTable prints history rows with their day-over-day deltas.
func printHistoryTable(rows []schema.HistoryRow, cfg *contract.Config, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(os.Stdout)

	headers := []string{"Technology", "Date", "Stars", "ΔStars", "Forks", "ΔForks", "DL/Month", "ΔDL", "Issues", "ΔIssues", "Popularity", "Usage"}
	table.Header(headers)

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := GetMaxTableNameWidth(cfg)
	var data [][]string
	for _, r := range rows {
		row := []string{
			truncateName(r.Technology, nameWidth),
			r.SnapshotDate,
			strconv.Itoa(r.Stars),
			fmt.Sprintf("%+d", r.StarsDelta),
			strconv.Itoa(r.Forks),
			fmt.Sprintf("%+d", r.ForksDelta),
			strconv.Itoa(r.DownloadsMonth),
			fmt.Sprintf("%+d", r.DownloadsDelta),
			strconv.Itoa(r.OpenIssues),
			fmt.Sprintf("%+d", r.OpenIssuesDelta),
			contract.TierLabel(r.PopularityTier, cfg.UseColors),
			string(r.UsageTier),
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Printf("%d history rows\n", len(rows))
	return nil
}
