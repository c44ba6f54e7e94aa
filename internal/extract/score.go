// Package extract turns noisy, semi-structured ad-library page content into
// normalized ad records: locale-aware date parsing, text cleanup, URL
// classification, variation estimation and relevance scoring. Nothing in this
// package performs I/O or returns errors; every helper degrades to a safe
// default on malformed input.
package extract

import "math"

const (
	activeAdsCeiling  = 50.0
	daysActiveCeiling = 60.0
	variationsDivisor = 5.0
)

// clamp limits v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

// safeTanh guards tanh against non-finite results, falling back to +-1 by sign.
func safeTanh(x float64) float64 {
	t := math.Tanh(x)
	if math.IsNaN(t) || math.IsInf(t, 0) {
		if x > 0 {
			return 1
		}
		return -1
	}
	return t
}

// ComputeScore derives the composite relevance score from the three raw
// counters:
//
//	A = clamp(activeAds, 0, 50)
//	D = clamp(daysActive, 0, 60)
//	V = max(1, variations)
//	score = 100 * (0.5*(A/50) + 0.3*(D/60) + 0.2*tanh(V/5))
//
// The result is rounded to two decimals and always lies in [0, 100] for
// non-negative inputs. Negative counters count as zero (one for variations).
func ComputeScore(activeAds, daysActive, variations int) float64 {
	a := clamp(float64(activeAds), 0, activeAdsCeiling)
	d := clamp(float64(daysActive), 0, daysActiveCeiling)
	v := math.Max(1, float64(variations))

	score := 100 * (0.5*(a/activeAdsCeiling) + 0.3*(d/daysActiveCeiling) + 0.2*safeTanh(v/variationsDivisor))
	return math.Round(score*100) / 100
}
