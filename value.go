package cellengine

import (
	"math"

	"github.com/berejant/cellengine/contracts"
)

// float64Epsilon is the machine epsilon for float64 (the gap between 1
// and the next representable value), the basis for the spec's relative
// tolerance.
var float64Epsilon = math.Nextafter(1, 2) - 1

// toleranceScale is the spec §4.2 relative-tolerance multiplier.
const toleranceScale = 1e8

// ValuesApproxEqual compares two Values the way test assertions should:
// exact for Empty/Text, tolerance-based for Number. NaN equals NaN and
// same-signed infinities are equal, matching spec §4.2; otherwise two
// numbers are equal within a tolerance of `1e8 * epsilon * max(|a|,|b|)`.
func ValuesApproxEqual(a, b contracts.Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	if a.Kind != contracts.ValueNumber {
		return a.Equal(b)
	}

	x, y := a.Number, b.Number
	if math.IsNaN(x) && math.IsNaN(y) {
		return true
	}
	if math.IsInf(x, 1) && math.IsInf(y, 1) {
		return true
	}
	if math.IsInf(x, -1) && math.IsInf(y, -1) {
		return true
	}
	if math.IsInf(x, 0) || math.IsInf(y, 0) {
		return false
	}

	tolerance := toleranceScale * float64Epsilon * math.Max(math.Abs(x), math.Abs(y))
	return math.Abs(x-y) <= tolerance
}
