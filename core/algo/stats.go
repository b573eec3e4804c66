// Package algo holds the numeric primitives shared by scoring and calibration.
package algo

import "math"

// Clamp restricts v to the closed interval [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 restricts v to [0,1].
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Logistic is the standard logistic function 1/(1+exp(-x)).
func Logistic(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// NormalCDF is the standard normal cumulative distribution function.
func NormalCDF(z float64) float64 {
	return 0.5 * (1.0 + math.Erf(z/math.Sqrt2))
}

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

// StdDev returns the population standard deviation, or 0 for fewer than two
// values.
func StdDev(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	mean := Mean(values)
	var sum float64
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(n))
}

// Pearson returns the Pearson correlation of two equal-length slices, or 0
// when either slice is constant or the lengths differ.
func Pearson(xs, ys []float64) float64 {
	n := len(xs)
	if n == 0 || n != len(ys) {
		return 0
	}
	mx, my := Mean(xs), Mean(ys)
	var sxy, sxx, syy float64
	for i := range n {
		dx := xs[i] - mx
		dy := ys[i] - my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return 0
	}
	return sxy / math.Sqrt(sxx*syy)
}

// CronbachAlpha computes Cronbach's alpha for a matrix of item tallies shaped
// [nRespondents][nItems]. Population variance is used consistently, which
// yields alpha=1.0 for perfectly correlated items. Returns 0 for degenerate
// input (no respondents, fewer than two items, ragged rows, zero variance)
// and clamps the result to [0,1].
func CronbachAlpha(matrix [][]float64) float64 {
	n := len(matrix)
	if n == 0 {
		return 0
	}
	k := len(matrix[0])
	if k < 2 {
		return 0
	}

	means := make([]float64, k)
	totals := make([]float64, n)
	for i := range n {
		row := matrix[i]
		if len(row) != k {
			return 0
		}
		for j := range k {
			means[j] += row[j]
			totals[i] += row[j]
		}
	}
	for j := range k {
		means[j] /= float64(n)
	}

	var sumItemVars float64
	for j := range k {
		var sum float64
		for i := range n {
			d := matrix[i][j] - means[j]
			sum += d * d
		}
		sumItemVars += sum / float64(n)
	}

	totalMean := Mean(totals)
	var totalVar float64
	for i := range n {
		d := totals[i] - totalMean
		totalVar += d * d
	}
	totalVar /= float64(n)
	if totalVar == 0 {
		return 0
	}

	kf := float64(k)
	alpha := (kf / (kf - 1.0)) * (1.0 - (sumItemVars / totalVar))
	return Clamp01(alpha)
}
