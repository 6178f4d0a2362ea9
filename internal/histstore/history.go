package histstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/devpulse/devpulse/internal/contract"
	"github.com/devpulse/devpulse/schema"
)

// historyColumns is the canonical column order for devpulse_history
// reads and writes.
var historyColumns = []string{
	"technology", "snapshot_date",
	"stars", "forks", "watchers", "open_issues", "contributors", "releases",
	"language",
	"downloads_day", "downloads_week", "downloads_month",
	"package_version",
	"weekly_daily_ratio", "monthly_weekly_ratio", "fork_star_ratio", "stars_per_contributor",
	"popularity_tier", "usage_tier",
	"last_updated_at",
	"stars_delta", "forks_delta", "downloads_delta", "open_issues_delta",
	"history_created_at",
}

// historyTx is an open merge transaction against the history table. The
// context from BeginMerge bounds every statement in the transaction.
type historyTx struct {
	ctx     context.Context
	tx      *sql.Tx
	backend schema.DatabaseBackend
	done    bool
}

var _ contract.HistoryTx = &historyTx{} // Compile-time check

// BeginMerge opens a transaction scoped to one technology's merge.
func (s *SQLStore) BeginMerge(ctx context.Context) (contract.HistoryTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin merge transaction: %w", err)
	}
	return &historyTx{ctx: ctx, tx: tx, backend: s.backend}, nil
}

// PriorRow returns the most recent history row for the technology with a
// snapshot date strictly earlier than before, or nil when none exists.
func (t *historyTx) PriorRow(technology, before string) (*schema.HistoryRow, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE technology = %s AND snapshot_date < %s ORDER BY snapshot_date DESC LIMIT 1",
		strings.Join(historyColumns, ", "), historyTable,
		placeholder(1, t.backend), placeholder(2, t.backend))

	row := t.tx.QueryRowContext(t.ctx, query, technology, before)
	prior, err := scanHistoryRow(row, t.backend)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read prior row for %s: %w", technology, err)
	}
	return prior, nil
}

// Upsert inserts or replaces the row keyed by (technology, snapshot_date).
func (t *historyTx) Upsert(row *schema.HistoryRow) error {
	query := upsertHistoryQuery(t.backend)
	args := []any{
		row.Technology, row.SnapshotDate,
		row.Stars, row.Forks, row.Watchers, row.OpenIssues, row.Contributors, row.Releases,
		nullableString(row.Language),
		row.DownloadsDay, row.DownloadsWeek, row.DownloadsMonth,
		nullableString(row.PackageVersion),
		row.WeeklyDailyRatio, row.MonthlyWeeklyRatio, row.ForkStarRatio, row.StarsPerContributor,
		string(row.PopularityTier), string(row.UsageTier),
		formatTime(row.LastUpdatedAt, t.backend),
		row.StarsDelta, row.ForksDelta, row.DownloadsDelta, row.OpenIssuesDelta,
		formatTime(row.HistoryCreatedAt, t.backend),
	}
	if _, err := t.tx.ExecContext(t.ctx, query, args...); err != nil {
		return fmt.Errorf("failed to upsert history row for %s on %s: %w", row.Technology, row.SnapshotDate, err)
	}
	return nil
}

// Commit finalizes the merge transaction.
func (t *historyTx) Commit() error {
	if t.done {
		return nil
	}
	t.done = true
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit merge transaction: %w", err)
	}
	return nil
}

// Rollback aborts the merge transaction. Safe to call after Commit.
func (t *historyTx) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	return t.tx.Rollback()
}

// GetHistory returns history rows for one technology ordered by snapshot
// date ascending. Empty from/to bounds are open-ended.
func (s *SQLStore) GetHistory(ctx context.Context, technology, from, to string) ([]schema.HistoryRow, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT %s FROM %s WHERE technology = %s",
		strings.Join(historyColumns, ", "), historyTable, placeholder(1, s.backend))
	args := []any{technology}
	if from != "" {
		fmt.Fprintf(&sb, " AND snapshot_date >= %s", placeholder(len(args)+1, s.backend))
		args = append(args, from)
	}
	if to != "" {
		fmt.Fprintf(&sb, " AND snapshot_date <= %s", placeholder(len(args)+1, s.backend))
		args = append(args, to)
	}
	sb.WriteString(" ORDER BY snapshot_date ASC")

	return s.queryHistory(ctx, sb.String(), args...)
}

// GetAllHistory returns every history row ordered by technology then
// snapshot date ascending.
func (s *SQLStore) GetAllHistory(ctx context.Context) ([]schema.HistoryRow, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY technology ASC, snapshot_date ASC",
		strings.Join(historyColumns, ", "), historyTable)
	return s.queryHistory(ctx, query)
}

func (s *SQLStore) queryHistory(ctx context.Context, query string, args ...any) ([]schema.HistoryRow, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []schema.HistoryRow
	for rows.Next() {
		row, err := scanHistoryRow(rows, s.backend)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		result = append(result, *row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history rows: %w", err)
	}
	return result, nil
}

// upsertHistoryQuery builds the backend-specific INSERT with conflict
// resolution on the (technology, snapshot_date) primary key.
func upsertHistoryQuery(backend schema.DatabaseBackend) string {
	cols := strings.Join(historyColumns, ", ")
	marks := placeholders(len(historyColumns), backend)

	// Every column except the key pair is replaced on conflict.
	updatable := historyColumns[2:]

	if backend == schema.MySQLBackend {
		assigns := make([]string, len(updatable))
		for i, col := range updatable {
			assigns[i] = fmt.Sprintf("%s = VALUES(%s)", col, col)
		}
		return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON DUPLICATE KEY UPDATE %s",
			historyTable, cols, marks, strings.Join(assigns, ", "))
	}

	assigns := make([]string, len(updatable))
	for i, col := range updatable {
		assigns[i] = fmt.Sprintf("%s = excluded.%s", col, col)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (technology, snapshot_date) DO UPDATE SET %s",
		historyTable, cols, marks, strings.Join(assigns, ", "))
}

// rowScanner abstracts *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanHistoryRow reads one row in historyColumns order.
func scanHistoryRow(scanner rowScanner, backend schema.DatabaseBackend) (*schema.HistoryRow, error) {
	var row schema.HistoryRow
	var language, packageVersion sql.NullString
	var popularityTier, usageTier string
	lastUpdatedDest, lastUpdated := scanTimeTarget(backend)
	createdDest, created := scanTimeTarget(backend)

	err := scanner.Scan(
		&row.Technology, &row.SnapshotDate,
		&row.Stars, &row.Forks, &row.Watchers, &row.OpenIssues, &row.Contributors, &row.Releases,
		&language,
		&row.DownloadsDay, &row.DownloadsWeek, &row.DownloadsMonth,
		&packageVersion,
		&row.WeeklyDailyRatio, &row.MonthlyWeeklyRatio, &row.ForkStarRatio, &row.StarsPerContributor,
		&popularityTier, &usageTier,
		lastUpdatedDest,
		&row.StarsDelta, &row.ForksDelta, &row.DownloadsDelta, &row.OpenIssuesDelta,
		createdDest,
	)
	if err != nil {
		return nil, err
	}

	row.Language = stringPtr(language)
	row.PackageVersion = stringPtr(packageVersion)
	row.PopularityTier = schema.PopularityTier(popularityTier)
	row.UsageTier = schema.UsageTier(usageTier)
	if row.LastUpdatedAt, err = lastUpdated(); err != nil {
		return nil, fmt.Errorf("failed to parse last_updated_at: %w", err)
	}
	if row.HistoryCreatedAt, err = created(); err != nil {
		return nil, fmt.Errorf("failed to parse history_created_at: %w", err)
	}
	return &row, nil
}

// nullableString maps nil pointers to SQL NULL.
func nullableString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// stringPtr maps SQL NULL back to a nil pointer.
func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// placeholder returns the n-th positional parameter marker.
func placeholder(n int, backend schema.DatabaseBackend) string {
	if backend == schema.PostgreSQLBackend {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// placeholders returns n comma-joined parameter markers starting at 1.
func placeholders(n int, backend schema.DatabaseBackend) string {
	marks := make([]string, n)
	for i := range marks {
		marks[i] = placeholder(i+1, backend)
	}
	return strings.Join(marks, ", ")
}
