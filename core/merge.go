package core

import (
	"context"
	"fmt"
	"time"

	"github.com/devpulse/devpulse/internal/contract"
	"github.com/devpulse/devpulse/schema"
)

// MergeHistory upserts derived rows into the history store. Each technology
// is merged inside its own read-then-write transaction: the prior row is
// read, deltas computed, and the (technology, snapshot date) row written in
// one unit, so a failed run never leaves a partially written row. Running
// the merge twice with identical input yields the same stored state.
func MergeHistory(ctx context.Context, store contract.HistoryStore, rows []schema.DerivedRow, now time.Time) ([]schema.HistoryRow, error) {
	merged := make([]schema.HistoryRow, 0, len(rows))
	for _, derived := range rows {
		row, err := mergeOne(ctx, store, derived, now)
		if err != nil {
			return merged, fmt.Errorf("merge %s@%s: %w", derived.Technology, derived.SnapshotDate, err)
		}
		merged = append(merged, row)
	}
	return merged, nil
}

func mergeOne(ctx context.Context, store contract.HistoryStore, derived schema.DerivedRow, now time.Time) (schema.HistoryRow, error) {
	tx, err := store.BeginMerge(ctx)
	if err != nil {
		return schema.HistoryRow{}, err
	}
	defer func() { _ = tx.Rollback() }()

	prior, err := tx.PriorRow(derived.Technology, derived.SnapshotDate)
	if err != nil {
		return schema.HistoryRow{}, err
	}

	row := BuildHistoryRow(derived, prior, now)
	if err := tx.Upsert(&row); err != nil {
		return schema.HistoryRow{}, err
	}
	if err := tx.Commit(); err != nil {
		return schema.HistoryRow{}, err
	}
	return row, nil
}

// BuildHistoryRow computes the delta fields of a history row against the
// technology's prior retained row. A first observation has all deltas zero,
// not an error.
func BuildHistoryRow(derived schema.DerivedRow, prior *schema.HistoryRow, now time.Time) schema.HistoryRow {
	row := schema.HistoryRow{
		DerivedRow:       derived,
		HistoryCreatedAt: now.UTC(),
	}
	if prior != nil {
		row.StarsDelta = derived.Stars - prior.Stars
		row.ForksDelta = derived.Forks - prior.Forks
		row.DownloadsDelta = derived.DownloadsMonth - prior.DownloadsMonth
		row.OpenIssuesDelta = derived.OpenIssues - prior.OpenIssues
	}
	return row
}
