package market

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/qtlab/astock-backtest/pkg/types"
)

// LimitTolerance absorbs tick rounding when detecting limit prices: a price
// within 0.1% of the computed band counts as at the limit.
const LimitTolerance = 0.001

// LotResult is the outcome of a round-lot quantity calculation.
type LotResult struct {
	ActualLots     int `json:"actual_lots"`
	ActualQuantity int `json:"actual_quantity"`
	LotSize        int `json:"lot_size"`
}

// CalculateLots returns the largest round-lot quantity purchasable with
// amount at price. A non-positive price is a precondition violation.
func CalculateLots(amount, price float64, lotSize int) (LotResult, error) {
	if price <= 0 {
		return LotResult{}, types.NewCalculationError(types.CodeDivisionByZero,
			"price must be positive for lot calculation",
			"supply a positive price")
	}
	if lotSize <= 0 {
		return LotResult{}, types.NewCalculationError(types.CodeInvalidInput,
			"lot size must be positive",
			"use the board preset lot size (100 or 200)")
	}
	if amount < 0 {
		return LotResult{}, types.NewCalculationError(types.CodeInvalidInput,
			"amount must not be negative",
			"supply a non-negative amount")
	}

	lots := decimal.NewFromFloat(amount).
		Div(decimal.NewFromFloat(price)).
		Div(decimal.NewFromInt(int64(lotSize))).
		IntPart()

	return LotResult{
		ActualLots:     int(lots),
		ActualQuantity: int(lots) * lotSize,
		LotSize:        lotSize,
	}, nil
}

// IsLimitUp reports whether price sits at or above the limit-up band over
// prevClose, within LimitTolerance.
func IsLimitUp(price, prevClose, limitFraction float64) bool {
	if prevClose <= 0 {
		return false
	}
	limit := prevClose * (1 + limitFraction)
	return price >= limit*(1-LimitTolerance)
}

// IsLimitDown reports whether price sits at or below the limit-down band
// over prevClose, within LimitTolerance.
func IsLimitDown(price, prevClose, limitFraction float64) bool {
	if prevClose <= 0 {
		return false
	}
	limit := prevClose * (1 - limitFraction)
	return price <= limit*(1+LimitTolerance)
}

// LimitUpPrice returns prevClose * (1 + limitFraction) rounded to the
// 2-decimal price tick.
func LimitUpPrice(prevClose, limitFraction float64) float64 {
	return roundPrice(prevClose * (1 + limitFraction))
}

// LimitDownPrice returns prevClose * (1 - limitFraction) rounded to the
// 2-decimal price tick.
func LimitDownPrice(prevClose, limitFraction float64) float64 {
	return roundPrice(prevClose * (1 - limitFraction))
}

func roundPrice(p float64) float64 {
	return math.Round(p*100) / 100
}
