package domain

import (
	"fmt"
	"math"
)

// Appraisal is the XP value of a concrete duration under a definition.
// Partial marks the sub-threshold regime, where the amount keeps
// two-decimal precision instead of rounding to a whole number.
type Appraisal struct {
	XP      float64
	Partial bool
}

// Appraise maps actual minutes to an XP amount. Below the threshold the
// value is linear-proportional; at or above it the per-minute rate is
// compounded by Multiplier^((actual-base)/base). The same function prices
// task earnings and reward costs.
//
// Integer rounding is half-to-even so repeated .5 boundaries do not drift
// upward. At actual == base the exponent is zero and the result is BaseXP
// exactly.
func Appraise(def Definition, actualMinutes int) (Appraisal, error) {
	if err := def.Validate(); err != nil {
		return Appraisal{}, err
	}
	if actualMinutes < 1 {
		return Appraisal{}, fmt.Errorf("actual minutes must be at least 1")
	}

	base := float64(def.BaseMinutes)
	actual := float64(actualMinutes)

	if actualMinutes < def.BaseMinutes {
		xp := def.BaseXP * actual / base
		return Appraisal{XP: roundCents(xp), Partial: true}, nil
	}

	rate := def.BaseXP / base
	exponent := (actual - base) / base
	xp := rate * actual * math.Pow(def.Multiplier, exponent)
	return Appraisal{XP: math.RoundToEven(xp)}, nil
}

func roundCents(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}
