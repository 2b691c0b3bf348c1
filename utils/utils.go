package utils

import "math"

// FormatFloat rounds f to round decimal places, leaving NaN and Inf alone.
func FormatFloat(f float64, round int32) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return f
	}
	pow := math.Pow(10, float64(round))
	return math.Round(f*pow) / pow
}

func AllFinite(data []float64) bool {
	for _, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func IntMax(a, b int) int {
	if a > b {
		return a
	}
	return b
}
