package calculator

import (
	"math"

	"chartview/internal/model"
)

// round2 rounds to 2 decimal places, half away from zero (math.Round).
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CalculatePivots computes the classic floor-trader pivot point and three
// resistance/support levels from the prior month's high, low and close.
// Pure arithmetic: inputs are not validated, and for high >= low the
// output always satisfies S3 <= S2 <= S1 <= P <= R1 <= R2 <= R3.
func CalculatePivots(high, low, close float64) model.PivotLevels {
	p := (high + low + close) / 3
	return model.PivotLevels{
		P:  round2(p),
		R1: round2(2*p - low),
		R2: round2(p + (high - low)),
		R3: round2(high + 2*(p-low)),
		S1: round2(2*p - high),
		S2: round2(p - (high - low)),
		S3: round2(low - 2*(high-p)),
	}
}
