package metrics

// DefaultRatioCeiling caps risk-adjusted ratios before they reach
// diagnostics, so the rubric never compares against infinity.
const DefaultRatioCeiling = 10.0

// Ratio is the result of a ratio calculation whose denominator may be zero.
// A zero denominator with a positive numerator yields an unbounded ratio;
// the cap is applied once, here, instead of carrying an infinity sentinel
// through the pipeline.
type Ratio struct {
	value     float64
	unbounded bool
}

// Bounded wraps a finite ratio value.
func Bounded(value float64) Ratio {
	return Ratio{value: value}
}

// Unbounded marks a zero-denominator, positive-numerator ratio.
func Unbounded() Ratio {
	return Ratio{unbounded: true}
}

// IsUnbounded reports whether the ratio had a zero denominator.
func (r Ratio) IsUnbounded() bool {
	return r.unbounded
}

// Value returns the finite value, or 0 for an unbounded ratio. Use Capped
// when a numeric stand-in for "unbounded" is wanted.
func (r Ratio) Value() float64 {
	if r.unbounded {
		return 0
	}
	return r.value
}

// Capped returns the ratio clamped to ceiling. Unbounded ratios collapse to
// the ceiling; finite values above it are clamped as well, since near-zero
// denominators produce the same pathology as zero ones.
func (r Ratio) Capped(ceiling float64) float64 {
	if r.unbounded || r.value > ceiling {
		return ceiling
	}
	return r.value
}
