package utils

import "math"

// RoundDecimal rounds half away from zero to the given number of
// decimal places, so negative penalty scores round symmetrically with
// positive ones.
func RoundDecimal(value float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(value*pow) / pow
}
