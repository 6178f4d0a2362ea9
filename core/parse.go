package core

import (
	"encoding/json"
	"fmt"

	"github.com/devpulse/devpulse/internal/contract"
	"github.com/devpulse/devpulse/schema"
)

// DecodeRepoSnapshots flattens raw GitHub envelopes into typed snapshots.
// A payload that fails to decode is skipped with a warning; one bad payload
// never poisons the batch.
func DecodeRepoSnapshots(records []schema.RawRecord) []schema.RepoSnapshot {
	out := make([]schema.RepoSnapshot, 0, len(records))
	for _, rec := range records {
		var snap schema.RepoSnapshot
		if err := json.Unmarshal(rec.Payload, &snap); err != nil {
			contract.LogWarn("Skipping malformed github payload", fmt.Errorf("key %s: %w", rec.NaturalKey, err))
			continue
		}
		snap.ExtractedAt = rec.ExtractedAt
		out = append(out, snap)
	}
	return out
}

// DecodePackageSnapshots flattens raw PyPI envelopes into typed snapshots.
func DecodePackageSnapshots(records []schema.RawRecord) []schema.PackageSnapshot {
	out := make([]schema.PackageSnapshot, 0, len(records))
	for _, rec := range records {
		var snap schema.PackageSnapshot
		if err := json.Unmarshal(rec.Payload, &snap); err != nil {
			contract.LogWarn("Skipping malformed pypi payload", fmt.Errorf("key %s: %w", rec.NaturalKey, err))
			continue
		}
		snap.ExtractedAt = rec.ExtractedAt
		out = append(out, snap)
	}
	return out
}
