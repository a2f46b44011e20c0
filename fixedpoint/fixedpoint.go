// Package fixedpoint converts floating-point gain coefficients into the
// mantissa/scale pairs consumed by integer-only control firmware. A pair
// (K, scale) encodes the fixed-point value round(K * 2^scale) in a signed
// 32-bit mantissa; the firmware trusts the mantissa without re-checking
// range, so quantization must reject any coefficient that would overflow.
package fixedpoint

import (
	"fmt"
	"math"
)

// MaxScale is the largest admissible scale for a signed 32-bit mantissa.
const MaxScale = 31

// OverflowError reports a coefficient that does not fit the target width
// at the requested scale.
type OverflowError struct {
	Coeff float64
	Scale uint
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("fixedpoint: coefficient %v overflows int32 at scale %d (|K| must be < 2^%d)",
		e.Coeff, e.Scale, 31-e.Scale)
}

// Quantize encodes coeff as a signed 32-bit mantissa at the given scale:
// mantissa = round(coeff * 2^scale). It enforces |coeff| < 2^(31-scale).
func Quantize(coeff float64, scale uint) (int32, error) {
	if scale > MaxScale {
		return 0, fmt.Errorf("fixedpoint: scale %d exceeds maximum %d", scale, MaxScale)
	}
	if math.IsNaN(coeff) || math.IsInf(coeff, 0) {
		return 0, fmt.Errorf("fixedpoint: coefficient %v is not finite", coeff)
	}
	limit := math.Exp2(float64(31 - scale))
	if math.Abs(coeff) >= limit {
		return 0, &OverflowError{Coeff: coeff, Scale: scale}
	}
	m := math.Round(coeff * math.Exp2(float64(scale)))
	if m > math.MaxInt32 || m < math.MinInt32 {
		return 0, &OverflowError{Coeff: coeff, Scale: scale}
	}
	return int32(m), nil
}

// Decode recovers the floating-point coefficient represented by a
// mantissa/scale pair: mantissa / 2^scale.
func Decode(mantissa int32, scale uint) float64 {
	return float64(mantissa) / math.Exp2(float64(scale))
}

// ULP returns the value of one unit in the last place at the given scale,
// the worst-case round-trip error of Quantize followed by Decode.
func ULP(scale uint) float64 {
	return math.Exp2(-float64(scale))
}
