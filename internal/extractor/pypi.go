package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/devpulse/devpulse/internal/contract"
	"github.com/devpulse/devpulse/schema"
)

const (
	pypiBaseURL  = "https://pypi.org/pypi"
	pypiStatsURL = "https://pypistats.org/api"
)

// PyPI collects package snapshots from the PyPI metadata API and the
// pypistats download API.
type PyPI struct {
	client  *http.Client
	catalog []schema.Technology
	delay   time.Duration

	// BaseURL and StatsURL are overridable for tests.
	BaseURL  string
	StatsURL string
}

// NewPyPI creates a new PyPI extractor.
func NewPyPI(catalog []schema.Technology, cfg *contract.Config) *PyPI {
	return &PyPI{
		client:   &http.Client{Timeout: cfg.HTTPTimeout},
		catalog:  catalog,
		delay:    cfg.RequestDelay,
		BaseURL:  pypiBaseURL,
		StatsURL: pypiStatsURL,
	}
}

// Source identifies this extractor.
func (p *PyPI) Source() schema.SourceType { return schema.SourcePyPI }

// Extract fetches one snapshot per catalog package. A package that cannot
// be fetched is skipped with a warning, never failing the batch.
func (p *PyPI) Extract(ctx context.Context) ([]schema.RawRecord, error) {
	records := make([]schema.RawRecord, 0, len(p.catalog))
	for i, tech := range p.catalog {
		if i > 0 {
			sleepCtx(ctx, p.delay)
		}
		if err := ctx.Err(); err != nil {
			return records, err
		}

		snap, err := p.fetchPackage(ctx, tech.Package)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("Skipping package %s", tech.Package), err)
			continue
		}

		payload, err := json.Marshal(snap)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("Skipping package %s", tech.Package), err)
			continue
		}
		records = append(records, schema.RawRecord{
			Source:      schema.SourcePyPI,
			NaturalKey:  snap.Name,
			ExtractedAt: snap.ExtractedAt,
			Payload:     payload,
		})
	}
	return records, nil
}

// fetchPackage combines the metadata and download-statistics endpoints.
func (p *PyPI) fetchPackage(ctx context.Context, pkg string) (*schema.PackageSnapshot, error) {
	var meta pypiPackage
	metaURL := fmt.Sprintf("%s/%s/json", p.BaseURL, pkg)
	if err := getJSON(ctx, p.client, metaURL, nil, &meta); err != nil {
		return nil, err
	}

	// Download statistics are best-effort; missing stats count as zero
	var stats pypiRecentStats
	statsURL := fmt.Sprintf("%s/packages/%s/recent", p.StatsURL, pkg)
	if err := getJSON(ctx, p.client, statsURL, nil, &stats); err != nil {
		contract.LogWarn(fmt.Sprintf("No download stats for %s", pkg), err)
	}

	return &schema.PackageSnapshot{
		Name:           pkg,
		Version:        meta.Info.Version,
		Summary:        meta.Info.Summary,
		Author:         meta.Info.Author,
		License:        meta.Info.License,
		Keywords:       meta.Info.Keywords,
		RequiresPython: meta.Info.RequiresPython,
		ReleaseCount:   len(meta.Releases),
		DownloadsDay:   stats.Data.LastDay,
		DownloadsWeek:  stats.Data.LastWeek,
		DownloadsMonth: stats.Data.LastMonth,
		ExtractedAt:    time.Now().UTC(),
	}, nil
}

// pypiPackage is the subset of the PyPI metadata response consumed here.
type pypiPackage struct {
	Info struct {
		Version        *string `json:"version"`
		Summary        *string `json:"summary"`
		Author         *string `json:"author"`
		License        *string `json:"license"`
		Keywords       *string `json:"keywords"`
		RequiresPython *string `json:"requires_python"`
	} `json:"info"`
	Releases map[string]json.RawMessage `json:"releases"`
}

// pypiRecentStats is the pypistats.org recent-downloads response.
type pypiRecentStats struct {
	Data struct {
		LastDay   int `json:"last_day"`
		LastWeek  int `json:"last_week"`
		LastMonth int `json:"last_month"`
	} `json:"data"`
}
