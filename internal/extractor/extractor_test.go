package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devpulse/devpulse/internal/contract"
	"github.com/devpulse/devpulse/schema"
)

func testConfig() *contract.Config {
	return &contract.Config{
		GitHubToken:  "test-token",
		RequestDelay: 0,
		HTTPTimeout:  5 * time.Second,
	}
}

func githubTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/apache/airflow", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{
			"full_name": "apache/airflow",
			"description": "Workflow orchestration platform",
			"language": "Python",
			"stargazers_count": 37500,
			"forks_count": 14200,
			"watchers_count": 37500,
			"open_issues_count": 950,
			"size": 250000,
			"default_branch": "main",
			"topics": ["airflow", "workflow"],
			"license": {"name": "Apache License 2.0"},
			"created_at": "2015-04-13T18:04:58Z",
			"updated_at": "2025-08-30T18:00:00Z",
			"pushed_at": "2025-08-30T17:30:00Z"
		}`)
	})
	mux.HandleFunc("/repos/apache/airflow/contributors", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"login":"a"},{"login":"b"},{"login":"c"}]`)
	})
	mux.HandleFunc("/repos/apache/airflow/releases", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"tag_name":"2.10.5"},{"tag_name":"2.10.4"}]`)
	})
	return httptest.NewServer(mux)
}

func TestGitHubExtract(t *testing.T) {
	server := githubTestServer(t)
	defer server.Close()

	catalog := []schema.Technology{{Name: "airflow", Repo: "apache/airflow", Package: "apache-airflow"}}
	g := NewGitHub(catalog, testConfig())
	g.BaseURL = server.URL

	records, err := g.Extract(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, schema.SourceGitHub, rec.Source)
	assert.Equal(t, "apache/airflow", rec.NaturalKey)
	assert.WithinDuration(t, time.Now(), rec.ExtractedAt, time.Minute)

	var snap schema.RepoSnapshot
	require.NoError(t, json.Unmarshal(rec.Payload, &snap))
	assert.Equal(t, 37_500, snap.Stars)
	assert.Equal(t, 14_200, snap.Forks)
	assert.Equal(t, 3, snap.Contributors)
	assert.Equal(t, 2, snap.Releases)
	require.NotNil(t, snap.Language)
	assert.Equal(t, "Python", *snap.Language)
	require.NotNil(t, snap.License)
	assert.Equal(t, "Apache License 2.0", *snap.License)
}

func TestGitHubExtract_SkipsFailedRepo(t *testing.T) {
	server := githubTestServer(t)
	defer server.Close()

	catalog := []schema.Technology{
		{Name: "ghost", Repo: "nobody/ghost", Package: "ghost"},
		{Name: "airflow", Repo: "apache/airflow", Package: "apache-airflow"},
	}
	g := NewGitHub(catalog, testConfig())
	g.BaseURL = server.URL

	// The unknown repo 404s, the batch still captures the good one
	records, err := g.Extract(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "apache/airflow", records[0].NaturalKey)
}

func TestGitHubExtract_RetriesAfterRateLimit(t *testing.T) {
	var repoCalls int
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/apache/airflow", func(w http.ResponseWriter, r *http.Request) {
		repoCalls++
		if repoCalls == 1 {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		fmt.Fprint(w, `{"full_name": "apache/airflow", "stargazers_count": 37500}`)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	catalog := []schema.Technology{{Name: "airflow", Repo: "apache/airflow", Package: "apache-airflow"}}
	g := NewGitHub(catalog, testConfig())
	g.BaseURL = server.URL
	g.RetryWait = 0

	records, err := g.Extract(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 2, repoCalls)
}

func TestGitHubExtract_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	catalog := []schema.Technology{{Name: "airflow", Repo: "apache/airflow", Package: "apache-airflow"}}
	g := NewGitHub(catalog, testConfig())

	records, err := g.Extract(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, records)
}

func TestPyPIExtract(t *testing.T) {
	metaMux := http.NewServeMux()
	metaMux.HandleFunc("/apache-airflow/json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"info": {
				"version": "2.10.5",
				"summary": "Programmatically author workflows",
				"author": "Apache Software Foundation",
				"license": "Apache License 2.0",
				"keywords": "airflow,workflow",
				"requires_python": ">=3.9"
			},
			"releases": {"2.10.5": [], "2.10.4": [], "2.10.3": []}
		}`)
	})
	metaServer := httptest.NewServer(metaMux)
	defer metaServer.Close()

	statsMux := http.NewServeMux()
	statsMux.HandleFunc("/packages/apache-airflow/recent", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": {"last_day": 410000, "last_week": 2800000, "last_month": 12000000}}`)
	})
	statsServer := httptest.NewServer(statsMux)
	defer statsServer.Close()

	catalog := []schema.Technology{{Name: "airflow", Repo: "apache/airflow", Package: "apache-airflow"}}
	p := NewPyPI(catalog, testConfig())
	p.BaseURL = metaServer.URL
	p.StatsURL = statsServer.URL

	records, err := p.Extract(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, schema.SourcePyPI, records[0].Source)
	assert.Equal(t, "apache-airflow", records[0].NaturalKey)

	var snap schema.PackageSnapshot
	require.NoError(t, json.Unmarshal(records[0].Payload, &snap))
	require.NotNil(t, snap.Version)
	assert.Equal(t, "2.10.5", *snap.Version)
	assert.Equal(t, 3, snap.ReleaseCount)
	assert.Equal(t, 410_000, snap.DownloadsDay)
	assert.Equal(t, 12_000_000, snap.DownloadsMonth)
}

func TestPyPIExtract_MissingStatsCountAsZero(t *testing.T) {
	metaMux := http.NewServeMux()
	metaMux.HandleFunc("/duckdb/json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"info": {"version": "1.1.0"}, "releases": {"1.1.0": []}}`)
	})
	metaServer := httptest.NewServer(metaMux)
	defer metaServer.Close()

	statsServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer statsServer.Close()

	catalog := []schema.Technology{{Name: "duckdb", Repo: "duckdb/duckdb", Package: "duckdb"}}
	p := NewPyPI(catalog, testConfig())
	p.BaseURL = metaServer.URL
	p.StatsURL = statsServer.URL

	records, err := p.Extract(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)

	var snap schema.PackageSnapshot
	require.NoError(t, json.Unmarshal(records[0].Payload, &snap))
	assert.Zero(t, snap.DownloadsDay)
	assert.Zero(t, snap.DownloadsMonth)
	assert.Equal(t, 1, snap.ReleaseCount)
}

func TestAll(t *testing.T) {
	catalog := []schema.Technology{{Name: "airflow", Repo: "apache/airflow", Package: "apache-airflow"}}
	extractors := All(catalog, testConfig())
	require.Len(t, extractors, 2)
	assert.Equal(t, schema.SourceGitHub, extractors[0].Source())
	assert.Equal(t, schema.SourcePyPI, extractors[1].Source())
}
