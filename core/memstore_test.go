package core

import (
	"context"
	"fmt"
	"sort"

	"github.com/devpulse/devpulse/internal/contract"
	"github.com/devpulse/devpulse/schema"
)

// memHistoryStore is an in-memory HistoryStore for pipeline tests.
type memHistoryStore struct {
	rows map[string]map[string]schema.HistoryRow // technology -> date -> row

	beginErr error
	mergeIn  bool // simulates a concurrent merge holding the store
}

func newMemHistoryStore() *memHistoryStore {
	return &memHistoryStore{rows: make(map[string]map[string]schema.HistoryRow)}
}

func (m *memHistoryStore) BeginMerge(_ context.Context) (contract.HistoryTx, error) {
	if m.beginErr != nil {
		return nil, m.beginErr
	}
	if m.mergeIn {
		return nil, fmt.Errorf("merge already in progress")
	}
	m.mergeIn = true
	return &memHistoryTx{store: m, staged: make(map[string]schema.HistoryRow)}, nil
}

func (m *memHistoryStore) GetHistory(_ context.Context, technology, from, to string) ([]schema.HistoryRow, error) {
	var out []schema.HistoryRow
	for date, row := range m.rows[technology] {
		if from != "" && date < from {
			continue
		}
		if to != "" && date > to {
			continue
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SnapshotDate < out[j].SnapshotDate })
	return out, nil
}

func (m *memHistoryStore) GetAllHistory(_ context.Context) ([]schema.HistoryRow, error) {
	var out []schema.HistoryRow
	for _, dates := range m.rows {
		for _, row := range dates {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Technology != out[j].Technology {
			return out[i].Technology < out[j].Technology
		}
		return out[i].SnapshotDate < out[j].SnapshotDate
	})
	return out, nil
}

type memHistoryTx struct {
	store  *memHistoryStore
	staged map[string]schema.HistoryRow
	done   bool
}

func (tx *memHistoryTx) PriorRow(technology, before string) (*schema.HistoryRow, error) {
	var prior *schema.HistoryRow
	for date, row := range tx.store.rows[technology] {
		if date >= before {
			continue
		}
		if prior == nil || date > prior.SnapshotDate {
			r := row
			prior = &r
		}
	}
	return prior, nil
}

func (tx *memHistoryTx) Upsert(row *schema.HistoryRow) error {
	tx.staged[row.Technology+"|"+row.SnapshotDate] = *row
	return nil
}

func (tx *memHistoryTx) Commit() error {
	for _, row := range tx.staged {
		if tx.store.rows[row.Technology] == nil {
			tx.store.rows[row.Technology] = make(map[string]schema.HistoryRow)
		}
		tx.store.rows[row.Technology][row.SnapshotDate] = row
	}
	tx.done = true
	tx.store.mergeIn = false
	return nil
}

func (tx *memHistoryTx) Rollback() error {
	if !tx.done {
		tx.staged = nil
		tx.done = true
		tx.store.mergeIn = false
	}
	return nil
}

// seed inserts a bare history row with the given stars and downloads.
func (m *memHistoryStore) seed(technology, date string, stars, downloadsDay int) {
	if m.rows[technology] == nil {
		m.rows[technology] = make(map[string]schema.HistoryRow)
	}
	m.rows[technology][date] = schema.HistoryRow{
		DerivedRow: schema.DerivedRow{
			Technology:   technology,
			SnapshotDate: date,
			Stars:        stars,
			DownloadsDay: downloadsDay,
		},
	}
}
