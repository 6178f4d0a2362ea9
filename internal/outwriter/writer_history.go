package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/devpulse/devpulse/schema"
)

// historyCSVHeader is the column order for CSV history output.
var historyCSVHeader = []string{
	"technology",
	"snapshot_date",
	"stars",
	"stars_delta",
	"forks",
	"forks_delta",
	"watchers",
	"open_issues",
	"open_issues_delta",
	"contributors",
	"releases",
	"language",
	"downloads_day",
	"downloads_week",
	"downloads_month",
	"downloads_delta",
	"package_version",
	"weekly_daily_ratio",
	"monthly_weekly_ratio",
	"fork_star_ratio",
	"stars_per_contributor",
	"popularity_tier",
	"usage_tier",
	"last_updated_at",
}

// writeJSONResultsForHistory marshals the history rows to JSON and writes them.
func writeJSONResultsForHistory(w io.Writer, rows []schema.HistoryRow) error {
	return writeJSON(w, rows)
}

// writeCSVResultsForHistory writes the history rows to a CSV writer.
func writeCSVResultsForHistory(w *csv.Writer, rows []schema.HistoryRow, fmtFloat func(float64) string) error {
	for _, r := range rows {
		row := []string{
			r.Technology,
			r.SnapshotDate,
			strconv.Itoa(r.Stars),
			strconv.Itoa(r.StarsDelta),
			strconv.Itoa(r.Forks),
			strconv.Itoa(r.ForksDelta),
			strconv.Itoa(r.Watchers),
			strconv.Itoa(r.OpenIssues),
			strconv.Itoa(r.OpenIssuesDelta),
			strconv.Itoa(r.Contributors),
			strconv.Itoa(r.Releases),
			derefOrEmpty(r.Language),
			strconv.Itoa(r.DownloadsDay),
			strconv.Itoa(r.DownloadsWeek),
			strconv.Itoa(r.DownloadsMonth),
			strconv.Itoa(r.DownloadsDelta),
			derefOrEmpty(r.PackageVersion),
			fmtFloat(r.WeeklyDailyRatio),
			fmtFloat(r.MonthlyWeeklyRatio),
			fmtFloat(r.ForkStarRatio),
			fmtFloat(r.StarsPerContributor),
			string(r.PopularityTier),
			string(r.UsageTier),
			r.LastUpdatedAt.Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// derefOrEmpty returns the pointed-to string or empty for nil.
func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
