// ABOUTME: Rounding helpers shared by the volume and cost stages
// ABOUTME: Decimal figures round half away from zero; whole liters and currency round half to even

package services

import "math"

func roundTo(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}

// roundCurrency rounds half to even, like Python's built-in round.
func roundCurrency(x float64) int {
	return int(math.RoundToEven(x))
}

// roundLiters reports a volume in whole liters, half to even.
func roundLiters(x float64) int {
	return int(math.RoundToEven(x))
}
