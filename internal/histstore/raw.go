package histstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/devpulse/devpulse/schema"
)

// SaveRawRecords appends a batch of raw extraction envelopes. The capture
// date is derived from the extraction timestamp so day-scoped reads stay
// portable across backends.
func (s *SQLStore) SaveRawRecords(ctx context.Context, records []schema.RawRecord) error {
	if len(records) == 0 {
		return nil
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (source, natural_key, extracted_at, capture_date, payload) VALUES (%s)",
		rawRecordsTable, placeholders(5, s.backend))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin raw record transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, rec := range records {
		_, err := tx.ExecContext(ctx, query,
			string(rec.Source), rec.NaturalKey,
			formatTime(rec.ExtractedAt, s.backend),
			schema.DateOf(rec.ExtractedAt),
			string(rec.Payload))
		if err != nil {
			return fmt.Errorf("failed to save raw record %s/%s: %w", rec.Source, rec.NaturalKey, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit raw records: %w", err)
	}
	return nil
}

// GetRawRecords returns all raw records a source captured on the given day,
// ordered by extraction time ascending.
func (s *SQLStore) GetRawRecords(ctx context.Context, source schema.SourceType, day string) ([]schema.RawRecord, error) {
	query := fmt.Sprintf(
		"SELECT source, natural_key, extracted_at, payload FROM %s WHERE source = %s AND capture_date = %s ORDER BY extracted_at ASC",
		rawRecordsTable, placeholder(1, s.backend), placeholder(2, s.backend))

	rows, err := s.db.QueryContext(ctx, query, string(source), day)
	if err != nil {
		return nil, fmt.Errorf("failed to query raw records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []schema.RawRecord
	for rows.Next() {
		var rec schema.RawRecord
		var src, payload string
		extractedDest, extracted := scanTimeTarget(s.backend)
		if err := rows.Scan(&src, &rec.NaturalKey, extractedDest, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan raw record: %w", err)
		}
		rec.Source = schema.SourceType(src)
		rec.Payload = json.RawMessage(payload)
		if rec.ExtractedAt, err = extracted(); err != nil {
			return nil, fmt.Errorf("failed to parse extracted_at: %w", err)
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate raw records: %w", err)
	}
	return result, nil
}

// CountRawRecords returns how many raw records a source captured on the day.
func (s *SQLStore) CountRawRecords(ctx context.Context, source schema.SourceType, day string) (int, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE source = %s AND capture_date = %s",
		rawRecordsTable, placeholder(1, s.backend), placeholder(2, s.backend))

	var n int
	if err := s.db.QueryRowContext(ctx, query, string(source), day).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count raw records: %w", err)
	}
	return n, nil
}
