// Package algo has the pure numeric routines behind trend computation.
package algo

import "github.com/devpulse/devpulse/schema"

// TrailingAvg returns the average of the last `window` values ending at
// index i (inclusive). When fewer than `window` values precede i, the
// average narrows to however many values are available. This is documented
// behavior: windows count retained rows, never calendar days.
func TrailingAvg(values []float64, i, window int) float64 {
	if i < 0 || i >= len(values) || window <= 0 {
		return 0
	}
	start := i - window + 1
	if start < 0 {
		start = 0
	}
	var sum float64
	for _, v := range values[start : i+1] {
		sum += v
	}
	return sum / float64(i-start+1)
}

// GrowthPct returns the percentage growth of values[i] against the value
// `lag` positions earlier: (current - past) / past * 100. It returns 0 when
// there is no row that far back or when the past value is not positive.
func GrowthPct(values []float64, i, lag int) float64 {
	past := i - lag
	if past < 0 || i >= len(values) {
		return 0
	}
	if values[past] <= 0 {
		return 0
	}
	return (values[i] - values[past]) / values[past] * 100
}

// DirectionOf compares a current value to its trailing average.
func DirectionOf(current, avg float64) schema.TrendDirection {
	switch {
	case current > avg:
		return schema.TrendAbove
	case current < avg:
		return schema.TrendBelow
	default:
		return schema.TrendEqual
	}
}
