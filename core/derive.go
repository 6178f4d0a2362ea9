package core

import (
	"github.com/devpulse/devpulse/schema"
)

// DeriveMetrics flattens unified records into metric rows with ratios,
// tiers and a snapshot date. It is a pure, row-local computation. Records
// absent from both sources are dropped and counted; the count surfaces in
// run bookkeeping, never as an error.
func DeriveMetrics(records []schema.UnifiedRecord) (rows []schema.DerivedRow, skipped int) {
	for _, rec := range records {
		if rec.Repo == nil && rec.Package == nil {
			skipped++
			continue
		}

		row := schema.DerivedRow{
			Technology:    rec.Technology,
			SnapshotDate:  schema.DateOf(*rec.LastUpdatedAt),
			LastUpdatedAt: rec.LastUpdatedAt.UTC(),
		}

		if r := rec.Repo; r != nil {
			row.Stars = r.Stars
			row.Forks = r.Forks
			row.Watchers = r.Watchers
			row.OpenIssues = r.OpenIssues
			row.Contributors = r.Contributors
			row.Releases = r.Releases
			row.Language = r.Language
		}
		if p := rec.Package; p != nil {
			row.DownloadsDay = p.DownloadsDay
			row.DownloadsWeek = p.DownloadsWeek
			row.DownloadsMonth = p.DownloadsMonth
			row.PackageVersion = p.Version
		}

		row.WeeklyDailyRatio = schema.SafeRatio(float64(row.DownloadsWeek), float64(row.DownloadsDay))
		row.MonthlyWeeklyRatio = schema.SafeRatio(float64(row.DownloadsMonth), float64(row.DownloadsWeek))
		row.ForkStarRatio = schema.SafeRatio(float64(row.Forks), float64(row.Stars))
		row.StarsPerContributor = schema.SafeRatio(float64(row.Stars), float64(row.Contributors))

		row.PopularityTier = schema.PopularityTierFor(row.Stars)
		row.UsageTier = schema.UsageTierFor(row.DownloadsMonth)

		rows = append(rows, row)
	}
	return rows, skipped
}
