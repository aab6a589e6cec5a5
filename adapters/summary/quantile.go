package summary

import "math"

// Quantile returns the p-quantile of sorted values using linear interpolation
// between closest ranks, with position (n-1)*p. sorted must be non-empty.
func Quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}

	pos := float64(n-1) * p
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}

	frac := pos - float64(lo)
	q := sorted[lo] + (sorted[hi]-sorted[lo])*frac
	if math.IsInf(q, 0) {
		// the span overflowed; interpolate without forming it
		q = sorted[lo]*(1-frac) + sorted[hi]*frac
	}
	return q
}
