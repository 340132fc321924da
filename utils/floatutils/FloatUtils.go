// Package floatutils provides utilities for working with floats
package floatutils

import "math"

// Clip limits value to the interval [min, max]. An infinite bound
// leaves that side of the interval open.
func Clip(value, min, max float64) float64 {
	return math.Max(min, math.Min(value, max))
}
