package schema

import "time"

// Window and retention defaults for trend computation. Windows count
// retained rows, not calendar days, so gaps in the history narrow a
// window rather than stretching it.
const (
	ShortWindow   = 7
	LongWindow    = 30
	RetentionDays = 90
)

// Tier thresholds. These are configuration constants, not structure:
// changing a boundary reclassifies technologies without touching any
// downstream computation.
const (
	PopularStars   = 5_000
	ProminentStars = 15_000
	EliteStars     = 30_000

	ModerateDownloads = 100_000
	HeavyDownloads    = 1_000_000
	MassiveDownloads  = 10_000_000
)

// DateFormat is the canonical representation of a snapshot date.
const DateFormat = "2006-01-02"

// DateOf truncates a timestamp to its UTC calendar date in DateFormat.
func DateOf(t time.Time) string {
	return t.UTC().Format(DateFormat)
}
