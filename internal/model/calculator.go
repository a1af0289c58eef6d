package model

import "math"

// Round2 rounds v to two decimal places, halves going to the even neighbour.
func Round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}
