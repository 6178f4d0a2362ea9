package schema

// Custom string types for type safety.
type (
	// SourceType identifies which external source a record came from.
	SourceType string

	// PopularityTier is the star-count bucket of a technology.
	PopularityTier string

	// UsageTier is the monthly-download bucket of a technology.
	UsageTier string

	// TrendDirection compares a current value against its own trailing average.
	TrendDirection string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for persistence.
	DatabaseBackend string
)

// All sources tracked by the pipeline.
const (
	SourceGitHub SourceType = "github"
	SourcePyPI   SourceType = "pypi"
)

// Popularity tiers, assigned by star count. Boundaries are inclusive on
// the lower bound of each tier.
const (
	TierEmerging  PopularityTier = "emerging"  // < 5,000 stars
	TierPopular   PopularityTier = "popular"   // >= 5,000 stars
	TierProminent PopularityTier = "prominent" // >= 15,000 stars
	TierElite     PopularityTier = "elite"     // >= 30,000 stars
)

// Usage tiers, assigned by monthly download count. Boundaries are inclusive
// on the lower bound of each tier.
const (
	UsageLight    UsageTier = "light"    // < 100,000 monthly downloads
	UsageModerate UsageTier = "moderate" // >= 100,000 monthly downloads
	UsageHeavy    UsageTier = "heavy"    // >= 1,000,000 monthly downloads
	UsageMassive  UsageTier = "massive"  // >= 10,000,000 monthly downloads
)

// Trend directions relative to the 7-row trailing average.
const (
	TrendAbove TrendDirection = "above"
	TrendBelow TrendDirection = "below"
	TrendEqual TrendDirection = "equal"
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	CSVOut  OutputMode = "csv"
	JSONOut OutputMode = "json"
)

// All store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
)

// AllSourceTypes lists all known source types.
var AllSourceTypes = []SourceType{SourceGitHub, SourcePyPI}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	CSVOut:  {},
	JSONOut: {},
}

// ValidBackends lists all valid store backends.
var ValidBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
}
