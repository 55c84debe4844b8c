package rate

import (
	"errors"
	"math"
)

// ErrBadMaximum reports an axis maximum the interval algorithm cannot work
// with. Callers treat it as a formatting error, never as a render.
var ErrBadMaximum = errors.New("rate: axis maximum must be a positive finite number")

// maxAxisTicks bounds the number of y-axis labels the interval may produce.
const maxAxisTicks = 10

// PickInterval chooses a y-axis tick spacing for the given maximum value.
// The interval starts at the largest power of 1024 not exceeding the maximum
// and doubles until at most maxAxisTicks ticks fit, so spacing stays on nice
// boundaries relative to the power-of-1024 base.
func PickInterval(maxValue float64) (float64, error) {
	if math.IsNaN(maxValue) || math.IsInf(maxValue, 0) || maxValue <= 0 {
		return 0, ErrBadMaximum
	}
	exp := math.Floor(math.Log(maxValue) / math.Log(unitBase))
	if exp < 0 {
		exp = 0
	}
	interval := math.Pow(unitBase, exp)
	// Doubling strictly grows the interval, so this terminates in
	// O(log(maxValue/interval)) steps.
	for maxValue/interval > maxAxisTicks {
		interval *= 2
	}
	return interval, nil
}

// AxisMax returns the displayed axis maximum: the smallest multiple of the
// interval at or above maxValue.
func AxisMax(maxValue, interval float64) float64 {
	if interval <= 0 {
		return maxValue
	}
	return math.Ceil(maxValue/interval) * interval
}
