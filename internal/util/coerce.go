package util

import (
	"math"
	"strconv"
	"strings"
)

// Raw CSV fields are coerced leniently: anything that does not parse
// to a finite number becomes 0, mirroring how upstream data gaps are
// treated during feature construction.

func CoerceFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func CoerceInt(s string) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		// tolerate "3.0" style integers
		return int64(CoerceFloat(s))
	}
	return v
}

// Finite clamps non-finite values to 0 so every feature cell is a
// usable real number.
func Finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
