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

// rankResult bundles the leaderboard date with its rows for JSON output.
type rankResult struct {
	Date  string            `json:"date"`
	Ranks []schema.TrendRow `json:"ranks"`
}

// PrintRankResults outputs the same-day leaderboard, dispatching based on the output format configured.
func PrintRankResults(trends []schema.TrendRow, date string, cfg *contract.Config) error {
	fmtFloat, fmtPct := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, rankResult{Date: date, Ranks: trends})
		}, "Wrote JSON rank results")
		if err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, trendCSVHeader, func(csvWriter *csv.Writer) error {
				return writeCSVResultsForTrends(csvWriter, trends, fmtFloat, fmtPct)
			})
		}, "Wrote CSV rank results")
		if err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		if err := printRankTable(trends, date, cfg, fmtPct); err != nil {
			return fmt.Errorf("error writing rank table output: %w", err)
		}
	}
	return nil
}

// printRankTable prints the leaderboard in rank order.
func printRankTable(trends []schema.TrendRow, date string, cfg *contract.Config, fmtPct func(float64) string) error {
	fmt.Printf("Daily ranking for %s\n", date)

	table := tablewriter.NewWriter(os.Stdout)

	headers := []string{"Rank", "Technology", "Stars", "Growth7", "DL/Day", "Stars Trend", "DL Trend"}
	table.Header(headers)

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := GetMaxTableNameWidth(cfg)
	var data [][]string
	for _, tr := range trends {
		row := []string{
			strconv.Itoa(tr.DailyRank),
			truncateName(tr.Technology, nameWidth),
			strconv.Itoa(tr.Stars),
			fmtPct(tr.StarsGrowth7Pct),
			strconv.Itoa(tr.DownloadsDay),
			contract.TrendLabel(tr.StarsTrend, cfg.UseColors),
			contract.TrendLabel(tr.DownloadsTrend, cfg.UseColors),
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
