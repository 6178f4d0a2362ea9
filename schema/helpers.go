package schema

// SafeRatio divides num by den, returning 0 when the denominator is zero
// or negative. Ratios are always defined, never an error.
func SafeRatio(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return num / den
}

// PopularityTierFor buckets a star count into a popularity tier.
func PopularityTierFor(stars int) PopularityTier {
	switch {
	case stars >= EliteStars:
		return TierElite
	case stars >= ProminentStars:
		return TierProminent
	case stars >= PopularStars:
		return TierPopular
	default:
		return TierEmerging
	}
}

// UsageTierFor buckets a monthly download count into a usage tier.
func UsageTierFor(monthlyDownloads int) UsageTier {
	switch {
	case monthlyDownloads >= MassiveDownloads:
		return UsageMassive
	case monthlyDownloads >= HeavyDownloads:
		return UsageHeavy
	case monthlyDownloads >= ModerateDownloads:
		return UsageModerate
	default:
		return UsageLight
	}
}
