// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/devpulse/devpulse/schema"
)

// Extractor defines one source-specific snapshot collector.
// This allows the pipeline to be tested without network access.
type Extractor interface {
	// Source identifies which source this extractor collects from.
	Source() schema.SourceType

	// Extract fetches one raw record per catalog entry. A technology that
	// cannot be fetched is skipped with a warning, never failing the batch.
	Extract(ctx context.Context) ([]schema.RawRecord, error)
}

// RawStore persists the raw JSON envelopes captured by the extractors.
type RawStore interface {
	// SaveRawRecords appends a batch of raw records.
	SaveRawRecords(ctx context.Context, records []schema.RawRecord) error

	// GetRawRecords returns all raw records for a source captured on the given day.
	GetRawRecords(ctx context.Context, source schema.SourceType, day string) ([]schema.RawRecord, error)

	// CountRawRecords returns how many raw records a source captured on the given day.
	CountRawRecords(ctx context.Context, source schema.SourceType, day string) (int, error)
}

// HistoryTx is a read-then-write transaction scoped to one technology's
// merge. Deltas are computed between PriorRow and Upsert so a failed merge
// never leaves a partially written row behind.
type HistoryTx interface {
	// PriorRow returns the technology's most recent row with a snapshot date
	// strictly before the given day, or nil when no such row exists.
	PriorRow(technology string, before string) (*schema.HistoryRow, error)

	// Upsert inserts the row, replacing any existing row with the same
	// (technology, snapshot date) key.
	Upsert(row *schema.HistoryRow) error

	Commit() error
	Rollback() error
}

// HistoryStore is the durable system-of-record for per-day metric rows,
// unique per (technology, snapshot date).
type HistoryStore interface {
	// BeginMerge opens a merge transaction.
	BeginMerge(ctx context.Context) (HistoryTx, error)

	// GetHistory returns a technology's rows within [from, to], date-ascending.
	// Empty bounds are open-ended.
	GetHistory(ctx context.Context, technology, from, to string) ([]schema.HistoryRow, error)

	// GetAllHistory returns every stored row, ordered by technology then date.
	GetAllHistory(ctx context.Context) ([]schema.HistoryRow, error)
}

// RunStore tracks pipeline run bookkeeping.
type RunStore interface {
	// BeginRun creates a new run record and returns its unique ID.
	BeginRun(ctx context.Context, startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun finalizes a run record with per-stage counts.
	EndRun(ctx context.Context, runID int64, endTime time.Time, counts schema.RunRecord) error
}

// Store aggregates every persistence concern behind one connection.
type Store interface {
	RawStore
	HistoryStore
	RunStore

	// GetStatus returns status information about the store.
	GetStatus(ctx context.Context) (schema.StoreStatus, error)

	// Clear drops all stored rows. Used by `devpulse store clear`.
	Clear(ctx context.Context) error

	// Close closes the underlying connection.
	Close() error
}
