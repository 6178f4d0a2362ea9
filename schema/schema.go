// Package schema has configs, models and constants for all parts of devpulse.
package schema

import (
	"encoding/json"
	"time"
)

// RawRecord is one payload captured from one source during one extraction run.
// The payload is kept verbatim so a run can always be reprocessed from what
// the source actually returned.
type RawRecord struct {
	Source      SourceType      `json:"source"`
	NaturalKey  string          `json:"natural_key"`
	ExtractedAt time.Time       `json:"extracted_at"`
	Payload     json.RawMessage `json:"payload"`
}

// RepoSnapshot holds the repository metadata captured from the code host
// for a single extraction. Missing counts default to zero; missing text
// stays nil.
type RepoSnapshot struct {
	FullName      string     `json:"full_name"`
	Description   *string    `json:"description"`
	Language      *string    `json:"language"`
	Stars         int        `json:"stars"`
	Forks         int        `json:"forks"`
	Watchers      int        `json:"watchers"`
	OpenIssues    int        `json:"open_issues"`
	SizeKB        int        `json:"size"`
	DefaultBranch *string    `json:"default_branch"`
	License       *string    `json:"license"`
	Topics        []string   `json:"topics"`
	Contributors  int        `json:"contributors_count"`
	Releases      int        `json:"releases_count"`
	CreatedAt     *time.Time `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at"`
	PushedAt      *time.Time `json:"pushed_at"`
	ExtractedAt   time.Time  `json:"extracted_at"`
}

// Key returns the natural key of the snapshot (repository full name).
func (r RepoSnapshot) Key() string { return r.FullName }

// ExtractionTime returns when the snapshot was captured.
func (r RepoSnapshot) ExtractionTime() time.Time { return r.ExtractedAt }

// PackageSnapshot holds the package metadata and download statistics
// captured from the package registry for a single extraction.
type PackageSnapshot struct {
	Name           string    `json:"package_name"`
	Version        *string   `json:"version"`
	Summary        *string   `json:"summary"`
	Author         *string   `json:"author"`
	License        *string   `json:"license"`
	Keywords       *string   `json:"keywords"`
	RequiresPython *string   `json:"requires_python"`
	ReleaseCount   int       `json:"release_count"`
	DownloadsDay   int       `json:"downloads_last_day"`
	DownloadsWeek  int       `json:"downloads_last_week"`
	DownloadsMonth int       `json:"downloads_last_month"`
	ExtractedAt    time.Time `json:"extracted_at"`
}

// Key returns the natural key of the snapshot (package name).
func (p PackageSnapshot) Key() string { return p.Name }

// ExtractionTime returns when the snapshot was captured.
func (p PackageSnapshot) ExtractionTime() time.Time { return p.ExtractedAt }

// SourceRecord is implemented by every per-source snapshot type so the
// resolver can pick the authoritative record per natural key.
type SourceRecord interface {
	Key() string
	ExtractionTime() time.Time
}

// Technology is one entry of the static catalog, mapping a canonical name
// to its identity on each source.
type Technology struct {
	Name    string `yaml:"name" json:"name"`
	Repo    string `yaml:"repo" json:"repo"`
	Package string `yaml:"package" json:"package"`
}

// UnifiedRecord joins the two canonical snapshots of one technology for one
// run. Either side may be nil when the source produced nothing for the run.
// LastUpdatedAt is the greater of the two extraction timestamps and is nil
// only when both sides are absent.
type UnifiedRecord struct {
	Technology    string           `json:"technology"`
	Repo          *RepoSnapshot    `json:"repo"`
	Package       *PackageSnapshot `json:"package"`
	LastUpdatedAt *time.Time       `json:"last_updated_at"`
}

// DerivedRow is a UnifiedRecord flattened into metric columns plus the
// derived ratios, tiers and snapshot date.
type DerivedRow struct {
	Technology     string  `json:"technology"`
	SnapshotDate   string  `json:"snapshot_date"` // YYYY-MM-DD
	Stars          int     `json:"stars"`
	Forks          int     `json:"forks"`
	Watchers       int     `json:"watchers"`
	OpenIssues     int     `json:"open_issues"`
	Contributors   int     `json:"contributors"`
	Releases       int     `json:"releases"`
	Language       *string `json:"language"`
	DownloadsDay   int     `json:"downloads_day"`
	DownloadsWeek  int     `json:"downloads_week"`
	DownloadsMonth int     `json:"downloads_month"`
	PackageVersion *string `json:"package_version"`

	WeeklyDailyRatio    float64 `json:"weekly_daily_ratio"`
	MonthlyWeeklyRatio  float64 `json:"monthly_weekly_ratio"`
	ForkStarRatio       float64 `json:"fork_star_ratio"`
	StarsPerContributor float64 `json:"stars_per_contributor"`

	PopularityTier PopularityTier `json:"popularity_tier"`
	UsageTier      UsageTier      `json:"usage_tier"`

	LastUpdatedAt time.Time `json:"last_updated_at"`
}

// HistoryRow is one persisted row of the history store, unique per
// (technology, snapshot date). Deltas are measured against the technology's
// immediately preceding retained row and are zero on first observation.
type HistoryRow struct {
	DerivedRow

	StarsDelta      int `json:"stars_delta"`
	ForksDelta      int `json:"forks_delta"`
	DownloadsDelta  int `json:"downloads_delta"`
	OpenIssuesDelta int `json:"open_issues_delta"`

	HistoryCreatedAt time.Time `json:"history_created_at"`
}

// TrendRow carries the trailing-window statistics for one technology on one
// snapshot date. Trend rows are recomputed in full from history on each run
// and are never persisted.
type TrendRow struct {
	Technology   string `json:"technology"`
	SnapshotDate string `json:"snapshot_date"`

	Stars        int `json:"stars"`
	DownloadsDay int `json:"downloads_day"`

	StarsAvg7     float64 `json:"stars_avg_7"`
	StarsAvg30    float64 `json:"stars_avg_30"`
	DownloadsAvg7 float64 `json:"downloads_avg_7"`

	StarsGrowth7Pct     float64 `json:"stars_growth_7_pct"`
	StarsGrowth30Pct    float64 `json:"stars_growth_30_pct"`
	DownloadsGrowth7Pct float64 `json:"downloads_growth_7_pct"`

	DailyRank int `json:"daily_rank"`

	StarsTrend     TrendDirection `json:"stars_trend"`
	DownloadsTrend TrendDirection `json:"downloads_trend"`
}

// RunRecord tracks the bookkeeping of one pipeline run.
type RunRecord struct {
	RunID        int64      `json:"run_id"`
	StartTime    time.Time  `json:"start_time"`
	EndTime      *time.Time `json:"end_time"`
	GitHubCount  int        `json:"github_count"`
	PyPICount    int        `json:"pypi_count"`
	DerivedCount int        `json:"derived_count"`
	SkippedCount int        `json:"skipped_count"`
	ConfigParams string     `json:"config_params"`
}

// StoreStatus summarizes the state of the persistence layer.
type StoreStatus struct {
	Backend      DatabaseBackend `json:"backend"`
	Location     string          `json:"location"`
	TableSizes   map[string]int  `json:"table_sizes"`
	Technologies int             `json:"technologies"`
	OldestDate   string          `json:"oldest_date"`
	NewestDate   string          `json:"newest_date"`
}
