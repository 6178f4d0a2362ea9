package core

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/devpulse/devpulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dateN(base time.Time, n int) string {
	return schema.DateOf(base.AddDate(0, 0, n))
}

func TestTrendWindowsOverTenRows(t *testing.T) {
	// Ten rows with stars 1..10 in date order: the 7-row average on the
	// last row is 7 and the 7-back growth is (10-3)/3*100.
	store := newMemHistoryStore()
	base := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := range 10 {
		store.seed("airflow", dateN(base, i), i+1, (i+1)*100)
	}

	trends, err := ComputeTrends(context.Background(), store, base.AddDate(0, 0, 9))
	require.NoError(t, err)
	require.Len(t, trends, 10)

	last := trends[len(trends)-1]
	assert.Equal(t, dateN(base, 9), last.SnapshotDate)
	assert.InDelta(t, 7.0, last.StarsAvg7, 0.0001)
	assert.InDelta(t, 5.5, last.StarsAvg30, 0.0001, "30-row window narrows to the 10 available rows")
	assert.InDelta(t, (10.0-3.0)/3.0*100, last.StarsGrowth7Pct, 0.0001)
	assert.Zero(t, last.StarsGrowth30Pct, "no row 30 positions back")
	assert.InDelta(t, 700.0, last.DownloadsAvg7, 0.0001)
	assert.Equal(t, schema.TrendAbove, last.StarsTrend)
}

func TestTrendWindowsCountRowsNotCalendarDays(t *testing.T) {
	// A technology with gaps still gets 7-row windows; the rows just span
	// more than 7 calendar days.
	store := newMemHistoryStore()
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := range 10 {
		store.seed("kafka", dateN(base, i*5), i+1, 0) // every fifth day
	}

	trends, err := ComputeTrends(context.Background(), store, base.AddDate(0, 0, 45))
	require.NoError(t, err)
	require.Len(t, trends, 10)

	last := trends[len(trends)-1]
	assert.InDelta(t, 7.0, last.StarsAvg7, 0.0001)
	assert.InDelta(t, (10.0-3.0)/3.0*100, last.StarsGrowth7Pct, 0.0001)
}

func TestTrendSameDayRankingTies(t *testing.T) {
	// Three technologies tied on stars share rank 1; the fourth takes
	// rank 4.
	store := newMemHistoryStore()
	day := "2025-08-30"
	store.seed("spark", day, 40000, 0)
	store.seed("kafka", day, 40000, 0)
	store.seed("airflow", day, 40000, 0)
	store.seed("prefect", day, 15000, 0)

	asOf := time.Date(2025, 8, 30, 0, 0, 0, 0, time.UTC)
	trends, err := ComputeTrends(context.Background(), store, asOf)
	require.NoError(t, err)
	require.Len(t, trends, 4)

	ranks := make(map[string]int, 4)
	for _, tr := range trends {
		ranks[tr.Technology] = tr.DailyRank
	}
	assert.Equal(t, 1, ranks["spark"])
	assert.Equal(t, 1, ranks["kafka"])
	assert.Equal(t, 1, ranks["airflow"])
	assert.Equal(t, 4, ranks["prefect"])
}

func TestTrendRankingIsPerDay(t *testing.T) {
	store := newMemHistoryStore()
	store.seed("spark", "2025-08-29", 100, 0)
	store.seed("duckdb", "2025-08-29", 200, 0)
	store.seed("spark", "2025-08-30", 300, 0)
	store.seed("duckdb", "2025-08-30", 250, 0)

	asOf := time.Date(2025, 8, 30, 0, 0, 0, 0, time.UTC)
	trends, err := ComputeTrends(context.Background(), store, asOf)
	require.NoError(t, err)

	byKey := make(map[string]int)
	for _, tr := range trends {
		byKey[tr.Technology+"|"+tr.SnapshotDate] = tr.DailyRank
	}
	assert.Equal(t, 2, byKey["spark|2025-08-29"])
	assert.Equal(t, 1, byKey["duckdb|2025-08-29"])
	assert.Equal(t, 1, byKey["spark|2025-08-30"])
	assert.Equal(t, 2, byKey["duckdb|2025-08-30"])
}

func TestTrendRetentionBoundary(t *testing.T) {
	// Exactly 90 days before the processing date is retained; 91 days is
	// not. The history store itself keeps everything.
	store := newMemHistoryStore()
	asOf := time.Date(2025, 8, 30, 12, 0, 0, 0, time.UTC)
	store.seed("dbt", schema.DateOf(asOf.AddDate(0, 0, -91)), 10, 0)
	store.seed("dbt", schema.DateOf(asOf.AddDate(0, 0, -90)), 11, 0)
	store.seed("dbt", schema.DateOf(asOf), 12, 0)

	trends, err := ComputeTrends(context.Background(), store, asOf)
	require.NoError(t, err)

	dates := make([]string, 0, len(trends))
	for _, tr := range trends {
		dates = append(dates, tr.SnapshotDate)
	}
	assert.NotContains(t, dates, schema.DateOf(asOf.AddDate(0, 0, -91)))
	assert.Contains(t, dates, schema.DateOf(asOf.AddDate(0, 0, -90)))
	assert.Contains(t, dates, schema.DateOf(asOf))

	all, err := store.GetAllHistory(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 3, "retention filters trend output only")
}

func TestTrendWindowsIncludeRetainedRowsBeyondRetention(t *testing.T) {
	// Rows older than the retention cutoff still feed the windows of the
	// rows that survive it.
	store := newMemHistoryStore()
	asOf := time.Date(2025, 8, 30, 0, 0, 0, 0, time.UTC)
	for i := range 7 {
		// Six old rows outside retention, one on the boundary.
		store.seed("sqlalchemy", schema.DateOf(asOf.AddDate(0, 0, -96+i)), 100, 0)
	}

	trends, err := ComputeTrends(context.Background(), store, asOf)
	require.NoError(t, err)
	require.Len(t, trends, 1, "only the boundary row survives the filter")
	assert.InDelta(t, 100.0, trends[0].StarsAvg7, 0.0001, "average spans all seven retained history rows")
}

func TestFilterTrends(t *testing.T) {
	trends := []schema.TrendRow{
		{Technology: "spark", SnapshotDate: "2025-08-29"},
		{Technology: "spark", SnapshotDate: "2025-08-30"},
		{Technology: "kafka", SnapshotDate: "2025-08-30"},
	}

	assert.Len(t, FilterTrends(trends, "spark", ""), 2)
	assert.Len(t, FilterTrends(trends, "", "2025-08-30"), 2)
	assert.Len(t, FilterTrends(trends, "kafka", "2025-08-30"), 1)
	assert.Len(t, FilterTrends(trends, "", ""), 3)
	assert.Empty(t, FilterTrends(trends, "duckdb", ""))
}

func TestTrendsFromHistoryEmpty(t *testing.T) {
	assert.Empty(t, TrendsFromHistory(nil, time.Now()))
}

func TestTrendOrderingStableByDateThenRank(t *testing.T) {
	store := newMemHistoryStore()
	for i, tech := range []string{"a", "b", "c"} {
		store.seed(tech, "2025-08-30", (3-i)*100, 0)
	}
	asOf := time.Date(2025, 8, 30, 0, 0, 0, 0, time.UTC)

	trends, err := ComputeTrends(context.Background(), store, asOf)
	require.NoError(t, err)
	require.Len(t, trends, 3)
	for i, tr := range trends {
		assert.Equal(t, i+1, tr.DailyRank, fmt.Sprintf("position %d", i))
	}
}
