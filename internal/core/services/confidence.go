package services

import "math"

// ComputeConfidence scores a summary from its citation and violation counts.
// More citations raise it up to 0.9, each violation lowers it by 0.1 up to 0.3.
// The result is rounded to two decimals and never negative.
func ComputeConfidence(citations, violations int) float64 {
	base := 0.4
	if citations > 0 {
		base = 0.6 + math.Min(0.3, float64(citations)*0.05)
	}
	penalty := math.Min(0.3, float64(violations)*0.1)
	return round(math.Max(0, base-penalty), 2)
}
