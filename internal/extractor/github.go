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

const githubBaseURL = "https://api.github.com"

// rateLimitWait is how long to back off after a 403 before retrying once.
const rateLimitWait = time.Minute

// GitHub collects repository snapshots from the GitHub API.
type GitHub struct {
	client  *http.Client
	token   string
	catalog []schema.Technology
	delay   time.Duration

	// BaseURL and RetryWait are overridable for tests.
	BaseURL   string
	RetryWait time.Duration
}

// NewGitHub creates a new GitHub extractor.
func NewGitHub(catalog []schema.Technology, cfg *contract.Config) *GitHub {
	return &GitHub{
		client:    &http.Client{Timeout: cfg.HTTPTimeout},
		token:     cfg.GitHubToken,
		catalog:   catalog,
		delay:     cfg.RequestDelay,
		BaseURL:   githubBaseURL,
		RetryWait: rateLimitWait,
	}
}

// Source identifies this extractor.
func (g *GitHub) Source() schema.SourceType { return schema.SourceGitHub }

// Extract fetches one snapshot per catalog repository. A repository that
// cannot be fetched is skipped with a warning, never failing the batch.
func (g *GitHub) Extract(ctx context.Context) ([]schema.RawRecord, error) {
	records := make([]schema.RawRecord, 0, len(g.catalog))
	for i, tech := range g.catalog {
		if i > 0 {
			// GitHub allows 5000 requests per hour; stay well below that
			sleepCtx(ctx, g.delay)
		}
		if err := ctx.Err(); err != nil {
			return records, err
		}

		snap, err := g.fetchRepo(ctx, tech.Repo)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("Skipping repository %s", tech.Repo), err)
			continue
		}

		payload, err := json.Marshal(snap)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("Skipping repository %s", tech.Repo), err)
			continue
		}
		records = append(records, schema.RawRecord{
			Source:      schema.SourceGitHub,
			NaturalKey:  snap.FullName,
			ExtractedAt: snap.ExtractedAt,
			Payload:     payload,
		})
	}
	return records, nil
}

// fetchRepo builds a snapshot from the repo, contributors and releases
// endpoints.
func (g *GitHub) fetchRepo(ctx context.Context, repo string) (*schema.RepoSnapshot, error) {
	var body ghRepo
	repoURL := fmt.Sprintf("%s/repos/%s", g.BaseURL, repo)
	if err := g.get(ctx, repoURL, &body); err != nil {
		return nil, err
	}

	// Auxiliary counts are best-effort; a failed call counts as zero
	var contributors []json.RawMessage
	if err := g.get(ctx, repoURL+"/contributors", &contributors); err != nil {
		contract.LogWarn(fmt.Sprintf("No contributor count for %s", repo), err)
	}
	var releases []json.RawMessage
	if err := g.get(ctx, repoURL+"/releases", &releases); err != nil {
		contract.LogWarn(fmt.Sprintf("No release count for %s", repo), err)
	}

	snap := &schema.RepoSnapshot{
		FullName:      body.FullName,
		Description:   body.Description,
		Language:      body.Language,
		Stars:         body.Stars,
		Forks:         body.Forks,
		Watchers:      body.Watchers,
		OpenIssues:    body.OpenIssues,
		SizeKB:        body.Size,
		DefaultBranch: body.DefaultBranch,
		Topics:        body.Topics,
		Contributors:  len(contributors),
		Releases:      len(releases),
		CreatedAt:     body.CreatedAt,
		UpdatedAt:     body.UpdatedAt,
		PushedAt:      body.PushedAt,
		ExtractedAt:   time.Now().UTC(),
	}
	if body.License != nil {
		snap.License = &body.License.Name
	}
	return snap, nil
}

// get wraps getJSON with auth headers and a single retry after a rate limit.
func (g *GitHub) get(ctx context.Context, url string, out any) error {
	headers := map[string]string{"Accept": "application/vnd.github+json"}
	if g.token != "" {
		headers["Authorization"] = "Bearer " + g.token
	}

	err := getJSON(ctx, g.client, url, headers, out)
	if se, ok := err.(*statusError); ok && se.StatusCode == http.StatusForbidden {
		contract.LogWarn("Rate limit hit, waiting before retry", err)
		sleepCtx(ctx, g.RetryWait)
		err = getJSON(ctx, g.client, url, headers, out)
	}
	return err
}

// ghRepo is the subset of the GitHub repository response consumed here.
type ghRepo struct {
	FullName      string     `json:"full_name"`
	Description   *string    `json:"description"`
	Language      *string    `json:"language"`
	Stars         int        `json:"stargazers_count"`
	Forks         int        `json:"forks_count"`
	Watchers      int        `json:"watchers_count"`
	OpenIssues    int        `json:"open_issues_count"`
	Size          int        `json:"size"`
	DefaultBranch *string    `json:"default_branch"`
	Topics        []string   `json:"topics"`
	License       *ghLicense `json:"license"`
	CreatedAt     *time.Time `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at"`
	PushedAt      *time.Time `json:"pushed_at"`
}

type ghLicense struct {
	Name string `json:"name"`
}
