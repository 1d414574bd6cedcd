// Package stats provides the scalar statistics used by the aggregator
// and detector: mean, median, quantiles, standard deviation, and
// percentile-of-value. Quantiles use linear interpolation between
// order statistics, matching the convention of common dataframe
// libraries so thresholds line up with analyst expectations.
package stats

import (
	"math"
	"sort"
)

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Median returns the middle value, or 0 for an empty slice.
func Median(values []float64) float64 {
	return Quantile(values, 0.5)
}

// Quantile returns the q-th quantile (0 ≤ q ≤ 1) using linear
// interpolation between closest ranks. Returns 0 for an empty slice.
func Quantile(values []float64, q float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return values[0]
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[n-1]
	}

	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// StdDev returns the sample standard deviation (n-1 denominator), or 0
// when fewer than two values are present.
func StdDev(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	mean := Mean(values)
	var ss float64
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(n-1))
}

// PercentileOf returns the share of values ≤ v, expressed 0-100.
// Returns 0 for an empty slice.
func PercentileOf(values []float64, v float64) float64 {
	if len(values) == 0 {
		return 0
	}
	count := 0
	for _, x := range values {
		if x <= v {
			count++
		}
	}
	return float64(count) / float64(len(values)) * 100
}
