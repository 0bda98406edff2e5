package money

import (
	"testing"
)

// BenchmarkAmountArithmetic tests exact arithmetic operations
func BenchmarkAmountArithmetic(b *testing.B) {
	a1 := New(100000.12)
	a2 := New(0.0003)

	b.Run("Add", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = a1.Add(a2)
		}
	})

	b.Run("Sub", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = a1.Sub(a2)
		}
	})

	b.Run("Mul", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = a1.Mul(a2)
		}
	})

	b.Run("Div", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = a1.Div(a2)
		}
	})
}

// BenchmarkAmountComparison tests comparison operations
func BenchmarkAmountComparison(b *testing.B) {
	a1 := New(40000.123456789)
	a2 := New(40000.123456788)

	b.Run("Equal", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = a1.Equal(a2)
		}
	})

	b.Run("GreaterThan", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = a1.GreaterThan(a2)
		}
	})
}

// BenchmarkAmountCreation tests construction paths
func BenchmarkAmountCreation(b *testing.B) {
	b.Run("FromFloat", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = New(100000.12)
		}
	})

	b.Run("FromString", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = NewFromString("100000.12")
		}
	})

	b.Run("FromInt", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = NewFromInt(100000)
		}
	})
}
