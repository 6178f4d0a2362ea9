// Package parquet provides data structures and functions for exporting
// devpulse history and trend data to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/devpulse/devpulse/schema"
)

// HistoryRecord maps one devpulse_history row to a Parquet row group.
type HistoryRecord struct {
	Technology   string `parquet:"technology,snappy"`
	SnapshotDate string `parquet:"snapshot_date,snappy"`

	Stars        int32 `parquet:"stars,snappy"`
	Forks        int32 `parquet:"forks,snappy"`
	Watchers     int32 `parquet:"watchers,snappy"`
	OpenIssues   int32 `parquet:"open_issues,snappy"`
	Contributors int32 `parquet:"contributors,snappy"`
	Releases     int32 `parquet:"releases,snappy"`

	// Language is nullable since not every repository reports one
	Language *string `parquet:"language,optional,snappy"`

	DownloadsDay   int64 `parquet:"downloads_day,snappy"`
	DownloadsWeek  int64 `parquet:"downloads_week,snappy"`
	DownloadsMonth int64 `parquet:"downloads_month,snappy"`

	PackageVersion *string `parquet:"package_version,optional,snappy"`

	WeeklyDailyRatio    float64 `parquet:"weekly_daily_ratio,snappy"`
	MonthlyWeeklyRatio  float64 `parquet:"monthly_weekly_ratio,snappy"`
	ForkStarRatio       float64 `parquet:"fork_star_ratio,snappy"`
	StarsPerContributor float64 `parquet:"stars_per_contributor,snappy"`

	PopularityTier string `parquet:"popularity_tier,snappy"`
	UsageTier      string `parquet:"usage_tier,snappy"`

	LastUpdatedAt time.Time `parquet:"last_updated_at,snappy"`

	StarsDelta      int32 `parquet:"stars_delta,snappy"`
	ForksDelta      int32 `parquet:"forks_delta,snappy"`
	DownloadsDelta  int64 `parquet:"downloads_delta,snappy"`
	OpenIssuesDelta int32 `parquet:"open_issues_delta,snappy"`

	HistoryCreatedAt time.Time `parquet:"history_created_at,snappy"`
}

// TrendRecord maps one computed trend row to a Parquet row group.
type TrendRecord struct {
	Technology   string `parquet:"technology,snappy"`
	SnapshotDate string `parquet:"snapshot_date,snappy"`

	Stars        int32 `parquet:"stars,snappy"`
	DownloadsDay int64 `parquet:"downloads_day,snappy"`

	StarsAvg7     float64 `parquet:"stars_avg_7,snappy"`
	StarsAvg30    float64 `parquet:"stars_avg_30,snappy"`
	DownloadsAvg7 float64 `parquet:"downloads_avg_7,snappy"`

	StarsGrowth7Pct     float64 `parquet:"stars_growth_7_pct,snappy"`
	StarsGrowth30Pct    float64 `parquet:"stars_growth_30_pct,snappy"`
	DownloadsGrowth7Pct float64 `parquet:"downloads_growth_7_pct,snappy"`

	DailyRank int32 `parquet:"daily_rank,snappy"`

	StarsTrend     string `parquet:"stars_trend,snappy"`
	DownloadsTrend string `parquet:"downloads_trend,snappy"`
}

// ConvertHistoryRecords converts schema history rows into Parquet records.
func ConvertHistoryRecords(rows []schema.HistoryRow) []HistoryRecord {
	records := make([]HistoryRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, HistoryRecord{
			Technology:          row.Technology,
			SnapshotDate:        row.SnapshotDate,
			Stars:               int32(row.Stars),
			Forks:               int32(row.Forks),
			Watchers:            int32(row.Watchers),
			OpenIssues:          int32(row.OpenIssues),
			Contributors:        int32(row.Contributors),
			Releases:            int32(row.Releases),
			Language:            row.Language,
			DownloadsDay:        int64(row.DownloadsDay),
			DownloadsWeek:       int64(row.DownloadsWeek),
			DownloadsMonth:      int64(row.DownloadsMonth),
			PackageVersion:      row.PackageVersion,
			WeeklyDailyRatio:    row.WeeklyDailyRatio,
			MonthlyWeeklyRatio:  row.MonthlyWeeklyRatio,
			ForkStarRatio:       row.ForkStarRatio,
			StarsPerContributor: row.StarsPerContributor,
			PopularityTier:      string(row.PopularityTier),
			UsageTier:           string(row.UsageTier),
			LastUpdatedAt:       row.LastUpdatedAt,
			StarsDelta:          int32(row.StarsDelta),
			ForksDelta:          int32(row.ForksDelta),
			DownloadsDelta:      int64(row.DownloadsDelta),
			OpenIssuesDelta:     int32(row.OpenIssuesDelta),
			HistoryCreatedAt:    row.HistoryCreatedAt,
		})
	}
	return records
}

// ConvertTrendRecords converts schema trend rows into Parquet records.
func ConvertTrendRecords(rows []schema.TrendRow) []TrendRecord {
	records := make([]TrendRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, TrendRecord{
			Technology:          row.Technology,
			SnapshotDate:        row.SnapshotDate,
			Stars:               int32(row.Stars),
			DownloadsDay:        int64(row.DownloadsDay),
			StarsAvg7:           row.StarsAvg7,
			StarsAvg30:          row.StarsAvg30,
			DownloadsAvg7:       row.DownloadsAvg7,
			StarsGrowth7Pct:     row.StarsGrowth7Pct,
			StarsGrowth30Pct:    row.StarsGrowth30Pct,
			DownloadsGrowth7Pct: row.DownloadsGrowth7Pct,
			DailyRank:           int32(row.DailyRank),
			StarsTrend:          string(row.StarsTrend),
			DownloadsTrend:      string(row.DownloadsTrend),
		})
	}
	return records
}

// WriteHistoryParquet writes history records to a Parquet file.
func WriteHistoryParquet(data []HistoryRecord, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteTrendsParquet writes trend records to a Parquet file.
func WriteTrendsParquet(data []TrendRecord, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet writes records using struct schema inference. The schema is
// derived from the record type's struct tags.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}
