package histstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/devpulse/devpulse/schema"
)

// BeginRun creates a new run record and returns its ID.
func (s *SQLStore) BeginRun(ctx context.Context, startTime time.Time, configParams map[string]any) (int64, error) {
	params, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to encode run config: %w", err)
	}

	if s.backend == schema.PostgreSQLBackend {
		query := fmt.Sprintf("INSERT INTO %s (start_time, config_params) VALUES ($1, $2) RETURNING run_id", runsTable)
		var runID int64
		if err := s.db.QueryRowContext(ctx, query, formatTime(startTime, s.backend), string(params)).Scan(&runID); err != nil {
			return 0, fmt.Errorf("failed to begin run: %w", err)
		}
		return runID, nil
	}

	query := fmt.Sprintf("INSERT INTO %s (start_time, config_params) VALUES (?, ?)", runsTable)
	res, err := s.db.ExecContext(ctx, query, formatTime(startTime, s.backend), string(params))
	if err != nil {
		return 0, fmt.Errorf("failed to begin run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read run ID: %w", err)
	}
	return runID, nil
}

// EndRun finalizes a run record with per-stage counts.
func (s *SQLStore) EndRun(ctx context.Context, runID int64, endTime time.Time, counts schema.RunRecord) error {
	query := fmt.Sprintf(
		"UPDATE %s SET end_time = %s, github_count = %s, pypi_count = %s, derived_count = %s, skipped_count = %s WHERE run_id = %s",
		runsTable,
		placeholder(1, s.backend), placeholder(2, s.backend), placeholder(3, s.backend),
		placeholder(4, s.backend), placeholder(5, s.backend), placeholder(6, s.backend))

	_, err := s.db.ExecContext(ctx, query,
		formatTime(endTime, s.backend),
		counts.GitHubCount, counts.PyPICount, counts.DerivedCount, counts.SkippedCount,
		runID)
	if err != nil {
		return fmt.Errorf("failed to end run %d: %w", runID, err)
	}
	return nil
}
