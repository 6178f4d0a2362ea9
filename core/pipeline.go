package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/devpulse/devpulse/internal/contract"
	"github.com/devpulse/devpulse/internal/outwriter"
	"github.com/devpulse/devpulse/schema"
)

// ExecuteExtract runs every extractor and persists the captured raw
// records. Per-technology fetch failures are tolerated inside each
// extractor; a source that captures nothing at all is reported here.
func ExecuteExtract(ctx context.Context, cfg *contract.Config, store contract.Store, extractors []contract.Extractor) (map[schema.SourceType]int, error) {
	counts := make(map[schema.SourceType]int, len(extractors))
	for _, ex := range extractors {
		fmt.Printf("Extracting %s snapshots...\n", ex.Source())
		records, err := ex.Extract(ctx)
		if err != nil {
			return counts, fmt.Errorf("extract %s: %w", ex.Source(), err)
		}
		if err := store.SaveRawRecords(ctx, records); err != nil {
			return counts, fmt.Errorf("save %s raw records: %w", ex.Source(), err)
		}
		counts[ex.Source()] = len(records)
		fmt.Printf("Captured %d %s records\n", len(records), ex.Source())
	}
	return counts, nil
}

// ValidateRawCoverage confirms both sources captured at least one record
// for the processing day. A completely silent source fails the run before
// any history row is written.
func ValidateRawCoverage(ctx context.Context, cfg *contract.Config, store contract.RawStore) error {
	day := schema.DateOf(cfg.ProcessDate)
	for _, src := range schema.AllSourceTypes {
		n, err := store.CountRawRecords(ctx, src, day)
		if err != nil {
			return fmt.Errorf("count %s raw records: %w", src, err)
		}
		if n == 0 {
			return fmt.Errorf("no %s records captured for %s", src, day)
		}
	}
	return nil
}

// ExecuteProcess runs the analytical half of the pipeline for the
// processing day: resolve canonical snapshots, join the catalog, derive
// metrics, merge history and recompute trends.
func ExecuteProcess(ctx context.Context, cfg *contract.Config, store contract.Store, catalog []schema.Technology) error {
	start := time.Now()
	day := schema.DateOf(cfg.ProcessDate)

	runID, err := store.BeginRun(ctx, start, map[string]any{
		"backend": string(cfg.Backend),
		"day":     day,
		"catalog": len(catalog),
	})
	if err != nil {
		contract.LogWarn("Run tracking initialization failed", err)
	}

	// --- 1. Resolve one canonical snapshot per technology per source ---
	ghRaw, err := store.GetRawRecords(ctx, schema.SourceGitHub, day)
	if err != nil {
		return fmt.Errorf("load github raw records: %w", err)
	}
	pyRaw, err := store.GetRawRecords(ctx, schema.SourcePyPI, day)
	if err != nil {
		return fmt.Errorf("load pypi raw records: %w", err)
	}
	repos := ResolveCanonical(DecodeRepoSnapshots(ghRaw))
	pkgs := ResolveCanonical(DecodePackageSnapshots(pyRaw))

	// --- 2. Join both sides onto the catalog ---
	unified := JoinCatalog(catalog, repos, pkgs)

	// --- 3. Derive ratios, tiers and snapshot dates ---
	derived, skipped := DeriveMetrics(unified)
	if skipped > 0 {
		fmt.Printf("Skipped %d technologies with no observation from either source\n", skipped)
	}
	if len(derived) == 0 {
		return errors.New("no technologies produced metric rows for this run")
	}

	// --- 4. Merge into history with day-over-day deltas ---
	merged, err := MergeHistory(ctx, store, derived, time.Now())
	if err != nil {
		return err
	}
	fmt.Printf("Merged %d history rows for %s\n", len(merged), day)

	// --- 5. Recompute trailing-window trends over the full history ---
	trends, err := ComputeTrends(ctx, store, cfg.ProcessDate)
	if err != nil {
		return fmt.Errorf("compute trends: %w", err)
	}
	fmt.Printf("Computed %d trend rows within the retention window\n", len(trends))

	if runID > 0 {
		end := time.Now()
		counts := schema.RunRecord{
			GitHubCount:  len(ghRaw),
			PyPICount:    len(pyRaw),
			DerivedCount: len(derived),
			SkippedCount: skipped,
		}
		if err := store.EndRun(ctx, runID, end, counts); err != nil {
			contract.LogWarn("Failed to finalize run tracking", err)
		}
	}

	fmt.Printf("Pipeline finished in %s\n", time.Since(start).Round(time.Millisecond))
	return nil
}

// ExecuteRun performs a complete scheduled run: extract, validate
// coverage, then process.
func ExecuteRun(ctx context.Context, cfg *contract.Config, store contract.Store, extractors []contract.Extractor, catalog []schema.Technology) error {
	if _, err := ExecuteExtract(ctx, cfg, store, extractors); err != nil {
		return err
	}
	if err := ValidateRawCoverage(ctx, cfg, store); err != nil {
		return err
	}
	return ExecuteProcess(ctx, cfg, store, catalog)
}

// ExecuteTrends computes trend rows and writes them with the configured
// output format, optionally filtered to one technology and/or one date.
func ExecuteTrends(ctx context.Context, cfg *contract.Config, store contract.HistoryStore) error {
	trends, err := ComputeTrends(ctx, store, cfg.ProcessDate)
	if err != nil {
		return err
	}
	trends = FilterTrends(trends, cfg.Technology, cfg.Date)
	return outwriter.NewOutWriter().WriteTrends(trends, cfg)
}

// ExecuteRank writes the same-day leaderboard for the configured date
// (latest stored date when unset), ordered by rank.
func ExecuteRank(ctx context.Context, cfg *contract.Config, store contract.HistoryStore) error {
	trends, err := ComputeTrends(ctx, store, cfg.ProcessDate)
	if err != nil {
		return err
	}
	if len(trends) == 0 {
		return errors.New("no trend rows available; run the pipeline first")
	}

	date := cfg.Date
	if date == "" {
		for _, tr := range trends {
			if tr.SnapshotDate > date {
				date = tr.SnapshotDate
			}
		}
	}
	day := FilterTrends(trends, "", date)
	if len(day) == 0 {
		return fmt.Errorf("no trend rows for %s", date)
	}
	if len(day) > cfg.ResultLimit {
		day = day[:cfg.ResultLimit]
	}
	return outwriter.NewOutWriter().WriteRank(day, date, cfg)
}

// ExecuteHistory writes stored history rows for a technology or, when no
// technology is given, for the whole store. A configured date narrows the
// query to that single snapshot day.
func ExecuteHistory(ctx context.Context, cfg *contract.Config, store contract.HistoryStore) error {
	var rows []schema.HistoryRow
	var err error
	if cfg.Technology != "" {
		rows, err = store.GetHistory(ctx, cfg.Technology, cfg.Date, cfg.Date)
	} else {
		rows, err = store.GetAllHistory(ctx)
		if err == nil && cfg.Date != "" {
			kept := rows[:0]
			for _, row := range rows {
				if row.SnapshotDate == cfg.Date {
					kept = append(kept, row)
				}
			}
			rows = kept
		}
	}
	if err != nil {
		return err
	}
	if len(rows) > cfg.ResultLimit {
		rows = rows[len(rows)-cfg.ResultLimit:]
	}
	return outwriter.NewOutWriter().WriteHistory(rows, cfg)
}

// ExecuteCatalog writes the technology catalog.
func ExecuteCatalog(cfg *contract.Config, catalog []schema.Technology) error {
	return outwriter.NewOutWriter().WriteCatalog(catalog, cfg)
}

// FilterTrends narrows trend rows to one technology and/or one snapshot
// date. Empty filters match everything.
func FilterTrends(trends []schema.TrendRow, technology, date string) []schema.TrendRow {
	if technology == "" && date == "" {
		return trends
	}
	var out []schema.TrendRow
	for _, tr := range trends {
		if technology != "" && tr.Technology != technology {
			continue
		}
		if date != "" && tr.SnapshotDate != date {
			continue
		}
		out = append(out, tr)
	}
	return out
}
