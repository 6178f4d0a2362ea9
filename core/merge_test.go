package core

import (
	"context"
	"testing"
	"time"

	"github.com/devpulse/devpulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func derivedRow(tech, date string, stars, forks, downloadsMonth, openIssues int) schema.DerivedRow {
	return schema.DerivedRow{
		Technology:     tech,
		SnapshotDate:   date,
		Stars:          stars,
		Forks:          forks,
		DownloadsMonth: downloadsMonth,
		OpenIssues:     openIssues,
	}
}

func TestMergeHistoryBootstrapDeltas(t *testing.T) {
	// A technology's first-ever row has all four deltas equal to zero.
	store := newMemHistoryStore()
	rows := []schema.DerivedRow{derivedRow("airflow", "2025-08-30", 37000, 14000, 12_000_000, 800)}

	merged, err := MergeHistory(context.Background(), store, rows, time.Now())

	require.NoError(t, err)
	require.Len(t, merged, 1)
	assert.Zero(t, merged[0].StarsDelta)
	assert.Zero(t, merged[0].ForksDelta)
	assert.Zero(t, merged[0].DownloadsDelta)
	assert.Zero(t, merged[0].OpenIssuesDelta)
}

func TestMergeHistoryDeltasAgainstPriorRow(t *testing.T) {
	store := newMemHistoryStore()
	ctx := context.Background()

	day1 := []schema.DerivedRow{derivedRow("duckdb", "2025-08-29", 20000, 1500, 9_000_000, 300)}
	_, err := MergeHistory(ctx, store, day1, time.Now())
	require.NoError(t, err)

	day2 := []schema.DerivedRow{derivedRow("duckdb", "2025-08-30", 20150, 1510, 9_200_000, 290)}
	merged, err := MergeHistory(ctx, store, day2, time.Now())
	require.NoError(t, err)

	require.Len(t, merged, 1)
	assert.Equal(t, 150, merged[0].StarsDelta)
	assert.Equal(t, 10, merged[0].ForksDelta)
	assert.Equal(t, 200_000, merged[0].DownloadsDelta)
	assert.Equal(t, -10, merged[0].OpenIssuesDelta)
}

func TestMergeHistoryDeltasSkipGaps(t *testing.T) {
	// With a missed run in between, deltas compare against the immediately
	// preceding retained row, not yesterday.
	store := newMemHistoryStore()
	ctx := context.Background()

	_, err := MergeHistory(ctx, store, []schema.DerivedRow{derivedRow("kafka", "2025-08-20", 28000, 0, 0, 0)}, time.Now())
	require.NoError(t, err)

	merged, err := MergeHistory(ctx, store, []schema.DerivedRow{derivedRow("kafka", "2025-08-30", 28500, 0, 0, 0)}, time.Now())
	require.NoError(t, err)

	assert.Equal(t, 500, merged[0].StarsDelta)
}

func TestMergeHistoryIdempotent(t *testing.T) {
	// Re-running the merge for the same day replaces the row; it never
	// duplicates the key or drifts the deltas.
	store := newMemHistoryStore()
	ctx := context.Background()

	_, err := MergeHistory(ctx, store, []schema.DerivedRow{derivedRow("prefect", "2025-08-29", 15000, 0, 0, 0)}, time.Now())
	require.NoError(t, err)

	today := []schema.DerivedRow{derivedRow("prefect", "2025-08-30", 15100, 0, 0, 0)}
	first, err := MergeHistory(ctx, store, today, time.Now())
	require.NoError(t, err)
	second, err := MergeHistory(ctx, store, today, time.Now())
	require.NoError(t, err)

	assert.Equal(t, first[0].DerivedRow, second[0].DerivedRow)
	assert.Equal(t, first[0].StarsDelta, second[0].StarsDelta)

	all, err := store.GetAllHistory(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2, "one row per (technology, day)")
}

func TestMergeHistoryReprocessedDayUsesStrictlyEarlierPrior(t *testing.T) {
	// Reprocessing a day must diff against the row before it, not against
	// the day's own previous version.
	store := newMemHistoryStore()
	ctx := context.Background()

	_, err := MergeHistory(ctx, store, []schema.DerivedRow{derivedRow("dbt", "2025-08-29", 10000, 0, 0, 0)}, time.Now())
	require.NoError(t, err)
	_, err = MergeHistory(ctx, store, []schema.DerivedRow{derivedRow("dbt", "2025-08-30", 10050, 0, 0, 0)}, time.Now())
	require.NoError(t, err)

	// Corrected figure arrives for the same day.
	merged, err := MergeHistory(ctx, store, []schema.DerivedRow{derivedRow("dbt", "2025-08-30", 10080, 0, 0, 0)}, time.Now())
	require.NoError(t, err)

	assert.Equal(t, 80, merged[0].StarsDelta, "delta is against 2025-08-29, not the replaced row")
}

func TestMergeHistoryConflictAborts(t *testing.T) {
	store := newMemHistoryStore()
	store.mergeIn = true // another run holds the store

	_, err := MergeHistory(context.Background(), store, []schema.DerivedRow{derivedRow("spark", "2025-08-30", 1, 0, 0, 0)}, time.Now())

	assert.Error(t, err)
}

func TestBuildHistoryRowStampsCreationTime(t *testing.T) {
	now := time.Date(2025, 8, 30, 18, 0, 0, 0, time.UTC)
	row := BuildHistoryRow(derivedRow("pandas", "2025-08-30", 1, 1, 1, 1), nil, now)
	assert.Equal(t, now, row.HistoryCreatedAt)
}
