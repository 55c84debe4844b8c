// Package rate formats bits-per-second values for humans and picks "nice"
// axis tick intervals under a base-1024 unit system.
package rate

import (
	"math"
	"strconv"
)

const unitBase = 1024

var units = [...]string{"b/s", "Kb/s", "Mb/s", "Gb/s", "Tb/s", "Pb/s", "Eb/s", "Zb/s", "Yb/s"}

// Format renders a rate as "<mantissa> <unit>" with a single space separator.
// Non-positive and non-finite values collapse to the canonical "0b/s".
// precision -1 keeps the shortest exact representation of the mantissa;
// otherwise the mantissa carries exactly precision significant digits.
func Format(value float64, precision int) string {
	if math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		return "0b/s"
	}
	exp := int(math.Floor(math.Log(value) / math.Log(unitBase)))
	if exp < 0 {
		exp = 0
	}
	// Values beyond the unit table clamp to the last unit instead of indexing
	// out of bounds.
	if exp > len(units)-1 {
		exp = len(units) - 1
	}
	mantissa := value / math.Pow(unitBase, float64(exp))
	return formatMantissa(mantissa, precision) + " " + units[exp]
}

// formatMantissa renders with significant-digit semantics: trailing zeros are
// kept, so 1 at precision 4 is "1.000" rather than "1".
func formatMantissa(mantissa float64, precision int) string {
	if precision < 0 {
		return strconv.FormatFloat(mantissa, 'f', -1, 64)
	}
	if precision == 0 {
		precision = 1
	}
	decimals := precision - 1
	if mantissa >= 1 {
		decimals -= int(math.Floor(math.Log10(mantissa)))
	}
	if decimals < 0 {
		decimals = 0
	}
	return strconv.FormatFloat(mantissa, 'f', decimals, 64)
}
