package core

import (
	"time"

	"github.com/devpulse/devpulse/schema"
)

// JoinCatalog left-outer-joins the canonical snapshots of both sources onto
// the technology catalog. Every catalog entry emits exactly one record; a
// side with no matching snapshot stays nil. LastUpdatedAt is the greater of
// the two side timestamps, and stays nil when both sides are absent rather
// than collapsing to epoch zero, which would skew later delta computation.
func JoinCatalog(catalog []schema.Technology, repos []schema.RepoSnapshot, pkgs []schema.PackageSnapshot) []schema.UnifiedRecord {
	repoByName := make(map[string]schema.RepoSnapshot, len(repos))
	for _, r := range repos {
		repoByName[r.FullName] = r
	}
	pkgByName := make(map[string]schema.PackageSnapshot, len(pkgs))
	for _, p := range pkgs {
		pkgByName[p.Name] = p
	}

	out := make([]schema.UnifiedRecord, 0, len(catalog))
	for _, tech := range catalog {
		rec := schema.UnifiedRecord{Technology: tech.Name}
		if r, ok := repoByName[tech.Repo]; ok {
			rec.Repo = &r
		}
		if p, ok := pkgByName[tech.Package]; ok {
			rec.Package = &p
		}
		rec.LastUpdatedAt = latestOf(rec.Repo, rec.Package)
		out = append(out, rec)
	}
	return out
}

func latestOf(repo *schema.RepoSnapshot, pkg *schema.PackageSnapshot) *time.Time {
	var latest *time.Time
	if repo != nil {
		t := repo.ExtractedAt
		latest = &t
	}
	if pkg != nil && (latest == nil || pkg.ExtractedAt.After(*latest)) {
		t := pkg.ExtractedAt
		latest = &t
	}
	return latest
}
