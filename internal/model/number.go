package model

import (
	"fmt"
	"math"
)

// Number is a quantized game amount stored as an integer count of
// hundredths. Number(450) is 4.50. Keeping amounts in fixed-point
// integers avoids float drift in payout arithmetic.
type Number int64

// Credit is a player balance in hundredths of a credit.
// Credit(1000) is 10 credits. Balances may go negative.
type Credit int64

// NumberFromFloat converts a float value like 4.50 to a Number.
// It rejects NaN, infinities, negatives, and values not aligned to 0.01.
func NumberFromFloat(f float64) (Number, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrInvalidNumber
	}
	if f < 0 {
		return 0, ErrInvalidNumber
	}
	scaled := f * 100
	rounded := math.Round(scaled)
	// Tolerate binary float representation error of a decimal input,
	// but reject values that are genuinely off the 0.01 grid.
	if math.Abs(scaled-rounded) > 1e-6 {
		return 0, ErrInvalidNumber
	}
	return Number(rounded), nil
}

// Float64 returns the decimal value of the number, e.g. Number(450) -> 4.5.
func (n Number) Float64() float64 {
	return float64(n) / 100
}

// String formats the number with two decimal places, e.g. "4.50".
func (n Number) String() string {
	sign := ""
	v := int64(n)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// Float64 returns the decimal value of the credit amount.
func (c Credit) Float64() float64 {
	return float64(c) / 100
}

// String formats the credit amount with two decimal places.
func (c Credit) String() string {
	return Number(c).String()
}
