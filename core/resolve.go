// Package core implements the devpulse metrics pipeline, from raw source
// snapshots through history merge and trend computation.
package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/devpulse/devpulse/internal/contract"
	"github.com/devpulse/devpulse/schema"
)

// ResolveCanonical reduces possibly-duplicate records to one canonical
// record per natural key: the one with the latest extraction timestamp.
// A timestamp tie is broken by comparing the records' JSON encodings and
// keeping the lexicographically smallest, so repeated runs over identical
// input always pick the same winner. Ties are logged as warnings.
// The result is sorted by natural key.
func ResolveCanonical[S schema.SourceRecord](records []S) []S {
	best := make(map[string]S, len(records))
	for _, rec := range records {
		key := rec.Key()
		cur, ok := best[key]
		if !ok {
			best[key] = rec
			continue
		}
		switch {
		case rec.ExtractionTime().After(cur.ExtractionTime()):
			best[key] = rec
		case rec.ExtractionTime().Equal(cur.ExtractionTime()):
			contract.LogWarn("Ambiguous duplicate snapshot", fmt.Errorf("key %s has records tied at %s", key, rec.ExtractionTime().Format(contract.DateTimeFormat)))
			if fingerprint(rec) < fingerprint(cur) {
				best[key] = rec
			}
		}
	}

	keys := make([]string, 0, len(best))
	for k := range best {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]S, 0, len(best))
	for _, k := range keys {
		out = append(out, best[k])
	}
	return out
}

// fingerprint returns a stable byte representation of a record for
// deterministic tie-breaking. encoding/json emits struct fields in
// declaration order, so equal records always produce equal fingerprints.
func fingerprint(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	if err := enc.Encode(v); err != nil {
		return ""
	}
	return buf.String()
}
