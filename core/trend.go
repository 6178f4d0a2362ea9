package core

import (
	"context"
	"sort"
	"time"

	"github.com/devpulse/devpulse/core/algo"
	"github.com/devpulse/devpulse/internal/contract"
	"github.com/devpulse/devpulse/schema"
)

// ComputeTrends recomputes every trend row from the full history store.
// Windows are counted over each technology's retained rows ordered by
// snapshot date, never over calendar days, so gaps from missed runs narrow
// a window instead of stretching it. After computation, rows older than the
// retention cutoff relative to asOf are filtered out; the history store
// itself is never touched.
func ComputeTrends(ctx context.Context, store contract.HistoryStore, asOf time.Time) ([]schema.TrendRow, error) {
	history, err := store.GetAllHistory(ctx)
	if err != nil {
		return nil, err
	}
	return TrendsFromHistory(history, asOf), nil
}

// TrendsFromHistory derives trend rows from an in-memory history set.
// Split out from ComputeTrends so the window semantics are testable without
// a store.
func TrendsFromHistory(history []schema.HistoryRow, asOf time.Time) []schema.TrendRow {
	byTech := make(map[string][]schema.HistoryRow)
	for _, row := range history {
		byTech[row.Technology] = append(byTech[row.Technology], row)
	}

	var trends []schema.TrendRow
	for tech, rows := range byTech {
		sort.Slice(rows, func(i, j int) bool {
			return rows[i].SnapshotDate < rows[j].SnapshotDate
		})

		stars := make([]float64, len(rows))
		downloads := make([]float64, len(rows))
		for i, row := range rows {
			stars[i] = float64(row.Stars)
			downloads[i] = float64(row.DownloadsDay)
		}

		for i, row := range rows {
			tr := schema.TrendRow{
				Technology:   tech,
				SnapshotDate: row.SnapshotDate,
				Stars:        row.Stars,
				DownloadsDay: row.DownloadsDay,

				StarsAvg7:     algo.TrailingAvg(stars, i, schema.ShortWindow),
				StarsAvg30:    algo.TrailingAvg(stars, i, schema.LongWindow),
				DownloadsAvg7: algo.TrailingAvg(downloads, i, schema.ShortWindow),

				StarsGrowth7Pct:     algo.GrowthPct(stars, i, schema.ShortWindow),
				StarsGrowth30Pct:    algo.GrowthPct(stars, i, schema.LongWindow),
				DownloadsGrowth7Pct: algo.GrowthPct(downloads, i, schema.ShortWindow),
			}
			tr.StarsTrend = algo.DirectionOf(float64(row.Stars), tr.StarsAvg7)
			tr.DownloadsTrend = algo.DirectionOf(float64(row.DownloadsDay), tr.DownloadsAvg7)
			trends = append(trends, tr)
		}
	}

	rankSameDay(trends)

	cutoff := schema.DateOf(asOf.AddDate(0, 0, -schema.RetentionDays))
	retained := trends[:0]
	for _, tr := range trends {
		if tr.SnapshotDate >= cutoff {
			retained = append(retained, tr)
		}
	}

	sort.Slice(retained, func(i, j int) bool {
		if retained[i].SnapshotDate != retained[j].SnapshotDate {
			return retained[i].SnapshotDate < retained[j].SnapshotDate
		}
		return retained[i].DailyRank < retained[j].DailyRank
	})
	return retained
}

// rankSameDay assigns each trend row its rank by stars among all rows that
// share its snapshot date. Tied star counts share a rank and the next
// distinct count skips by the tie count.
func rankSameDay(trends []schema.TrendRow) {
	byDate := make(map[string][]int) // date -> indices into trends
	for i, tr := range trends {
		byDate[tr.SnapshotDate] = append(byDate[tr.SnapshotDate], i)
	}
	for _, idxs := range byDate {
		stars := make([]int, len(idxs))
		for j, i := range idxs {
			stars[j] = trends[i].Stars
		}
		ranks := algo.CompetitionRanks(stars)
		for j, i := range idxs {
			trends[i].DailyRank = ranks[j]
		}
	}
}
