package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/devpulse/devpulse/schema"
)

// trendCSVHeader is the column order for CSV trend output.
var trendCSVHeader = []string{
	"technology",
	"snapshot_date",
	"stars",
	"stars_avg_7",
	"stars_avg_30",
	"stars_growth_7_pct",
	"stars_growth_30_pct",
	"downloads_day",
	"downloads_avg_7",
	"downloads_growth_7_pct",
	"daily_rank",
	"stars_trend",
	"downloads_trend",
}

// writeJSONResultsForTrends marshals the trend rows to JSON and writes them.
func writeJSONResultsForTrends(w io.Writer, trends []schema.TrendRow) error {
	return writeJSON(w, trends)
}

// writeCSVResultsForTrends writes the trend rows to a CSV writer.
func writeCSVResultsForTrends(w *csv.Writer, trends []schema.TrendRow, fmtFloat, fmtPct func(float64) string) error {
	for _, tr := range trends {
		row := []string{
			tr.Technology,
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
			string(tr.StarsTrend),
			string(tr.DownloadsTrend),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
