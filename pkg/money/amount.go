package money

import (
	"github.com/shopspring/decimal"

	"github.com/qtlab/astock-backtest/pkg/types"
)

// Amount is an exact monetary value. All arithmetic is performed on a
// decimal representation, so chained add/subtract/multiply operations on
// values with up to four decimal places never accumulate binary
// floating-point error.
type Amount struct {
	value decimal.Decimal
}

// New creates an amount from a float64.
func New(value float64) Amount {
	return Amount{value: decimal.NewFromFloat(value)}
}

// NewFromInt creates an amount from an integer.
func NewFromInt(value int64) Amount {
	return Amount{value: decimal.NewFromInt(value)}
}

// NewFromString creates an amount from a decimal string.
func NewFromString(value string) (Amount, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Amount{}, types.NewCalculationError(types.CodeInvalidInput,
			"invalid decimal literal: "+value, "pass a numeric string such as \"10.50\"")
	}
	return Amount{value: d}, nil
}

// Zero returns the zero amount.
func Zero() Amount {
	return Amount{value: decimal.Zero}
}

// Add returns a + other.
func (a Amount) Add(other Amount) Amount {
	return Amount{value: a.value.Add(other.value)}
}

// Sub returns a - other.
func (a Amount) Sub(other Amount) Amount {
	return Amount{value: a.value.Sub(other.value)}
}

// Mul returns a * other.
func (a Amount) Mul(other Amount) Amount {
	return Amount{value: a.value.Mul(other.value)}
}

// MulFloat returns a * scalar.
func (a Amount) MulFloat(scalar float64) Amount {
	return Amount{value: a.value.Mul(decimal.NewFromFloat(scalar))}
}

// Div returns a / divisor. A zero divisor is a precondition violation and
// reported as a DIVISION_BY_ZERO calculation error.
func (a Amount) Div(divisor Amount) (Amount, error) {
	if divisor.value.IsZero() {
		return Amount{}, types.NewCalculationError(types.CodeDivisionByZero,
			"division by zero", "check the divisor before dividing, or use SafeDiv")
	}
	return Amount{value: a.value.Div(divisor.value)}, nil
}

// SafeDiv returns a / divisor, or fallback when the divisor is zero.
func (a Amount) SafeDiv(divisor, fallback Amount) Amount {
	if divisor.value.IsZero() {
		return fallback
	}
	return Amount{value: a.value.Div(divisor.value)}
}

// Neg returns -a.
func (a Amount) Neg() Amount {
	return Amount{value: a.value.Neg()}
}

// Abs returns |a|.
func (a Amount) Abs() Amount {
	return Amount{value: a.value.Abs()}
}

// IsZero reports whether a == 0.
func (a Amount) IsZero() bool {
	return a.value.IsZero()
}

// IsNegative reports whether a < 0.
func (a Amount) IsNegative() bool {
	return a.value.IsNegative()
}

// IsPositive reports whether a > 0.
func (a Amount) IsPositive() bool {
	return a.value.IsPositive()
}

// GreaterThan reports whether a > other.
func (a Amount) GreaterThan(other Amount) bool {
	return a.value.GreaterThan(other.value)
}

// GreaterThanOrEqual reports whether a >= other.
func (a Amount) GreaterThanOrEqual(other Amount) bool {
	return a.value.GreaterThanOrEqual(other.value)
}

// LessThan reports whether a < other.
func (a Amount) LessThan(other Amount) bool {
	return a.value.LessThan(other.value)
}

// LessThanOrEqual reports whether a <= other.
func (a Amount) LessThanOrEqual(other Amount) bool {
	return a.value.LessThanOrEqual(other.value)
}

// Equal reports whether a == other.
func (a Amount) Equal(other Amount) bool {
	return a.value.Equal(other.value)
}

// Cmp returns -1, 0 or 1 comparing a with other.
func (a Amount) Cmp(other Amount) int {
	return a.value.Cmp(other.value)
}

// Round rounds to the given number of decimal places and returns a plain
// float64 for display. Rounding happens only here, at the formatting
// boundary, never inside arithmetic.
func (a Amount) Round(places int32) float64 {
	f, _ := a.value.Round(places).Float64()
	return f
}

// Float64 returns the value as a float64 without rounding.
func (a Amount) Float64() float64 {
	f, _ := a.value.Float64()
	return f
}

// String returns the decimal string representation.
func (a Amount) String() string {
	return a.value.String()
}

// Max returns the largest of the given amounts.
func Max(first Amount, rest ...Amount) Amount {
	max := first
	for _, a := range rest {
		if a.GreaterThan(max) {
			max = a
		}
	}
	return max
}

// Min returns the smallest of the given amounts.
func Min(first Amount, rest ...Amount) Amount {
	min := first
	for _, a := range rest {
		if a.LessThan(min) {
			min = a
		}
	}
	return min
}
