package services

import "math"

// CommissionRate is the platform surcharge applied on top of a course's
// base price.
const CommissionRate = 0.03

// FinalPrice computes the price shown to students: base price plus the
// platform commission, rounded half-up to whole cents. A zero base price
// yields a zero final price, so free courses never pick up a surcharge.
func FinalPrice(basePrice float64) float64 {
	raw := basePrice * (1 + CommissionRate)
	return math.Floor(raw*100+0.5) / 100
}
