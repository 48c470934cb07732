// Package numeric holds the rounding policy shared by the scorers: every
// average and total is rounded half-up to two decimal places. Arithmetic is
// carried out on decimals so that values sitting exactly on a .005 boundary
// round the same way on every platform.
package numeric

import "github.com/shopspring/decimal"

// Places is the number of decimal places kept for averages and totals.
const Places = 2

// Round2 rounds x half-up to two decimal places.
func Round2(x float64) float64 {
	return decimal.NewFromFloat(x).Round(Places).InexactFloat64()
}

// Mean returns the rounded arithmetic mean of values.
// ok is false when values is empty.
func Mean(values []int) (mean float64, ok bool) {
	if len(values) == 0 {
		return 0, false
	}
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(decimal.NewFromInt(int64(v)))
	}
	return sum.DivRound(decimal.NewFromInt(int64(len(values))), Places).InexactFloat64(), true
}

// Sum adds values exactly and rounds the result to two decimal places.
func Sum(values []float64) float64 {
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(decimal.NewFromFloat(v))
	}
	return sum.Round(Places).InexactFloat64()
}

// Equal reports whether a and b are the same score at two-decimal precision.
func Equal(a, b float64) bool {
	return decimal.NewFromFloat(a).Round(Places).Equal(decimal.NewFromFloat(b).Round(Places))
}

// Compare orders a and b at two-decimal precision: -1 if a < b, 0 if equal, +1 if a > b.
func Compare(a, b float64) int {
	return decimal.NewFromFloat(a).Round(Places).Cmp(decimal.NewFromFloat(b).Round(Places))
}
