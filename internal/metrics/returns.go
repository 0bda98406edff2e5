package metrics

import (
	"math"

	"github.com/qtlab/astock-backtest/pkg/types"
)

// DefaultAnnualTradingDays is the annualization basis for A-share markets.
const DefaultAnnualTradingDays = 252

// TotalReturn returns the percent return over the whole curve. An empty
// curve or non-positive initial equity resolves to 0.
func TotalReturn(curve []types.EquityPoint) float64 {
	if len(curve) < 2 {
		return 0
	}
	initial := curve[0].Equity
	if initial <= 0 {
		return 0
	}
	return (curve[len(curve)-1].Equity - initial) / initial * 100
}

// AnnualizedReturn converts a percent total return over tradingDays into an
// annualized percent return. A total loss (or worse) is floored at exactly
// -100; zero trading days resolves to 0.
func AnnualizedReturn(totalReturnPct float64, tradingDays, annualTradingDays int) float64 {
	if tradingDays <= 0 || annualTradingDays <= 0 {
		return 0
	}
	if totalReturnPct <= -100 {
		return -100
	}
	years := float64(tradingDays) / float64(annualTradingDays)
	return (math.Pow(1+totalReturnPct/100, 1/years) - 1) * 100
}

// CompoundReturn chains percent returns multiplicatively:
// [10, -5, 15] compounds to 20.175, not 20.
func CompoundReturn(returnsPct []float64) float64 {
	compound := 1.0
	for _, r := range returnsPct {
		compound *= 1 + r/100
	}
	return (compound - 1) * 100
}

// DailyReturns returns percent day-over-day returns. Samples following a
// non-positive equity are skipped rather than producing a division by zero.
func DailyReturns(curve []types.EquityPoint) []float64 {
	if len(curve) < 2 {
		return nil
	}
	returns := make([]float64, 0, len(curve)-1)
	for i := 1; i < len(curve); i++ {
		prev := curve[i-1].Equity
		if prev <= 0 {
			continue
		}
		returns = append(returns, (curve[i].Equity-prev)/prev*100)
	}
	return returns
}

// Volatility annualizes the sample standard deviation of percent daily
// returns. Fewer than two observations resolve to 0.
func Volatility(dailyReturnsPct []float64, annualTradingDays int) float64 {
	sd := stdDev(dailyReturnsPct)
	if sd == 0 {
		return 0
	}
	return sd * math.Sqrt(float64(annualTradingDays))
}

// MonthlyReturns groups the curve by calendar month and returns the percent
// return of each month in chronological order.
func MonthlyReturns(curve []types.EquityPoint) []types.MonthlyReturn {
	if len(curve) == 0 {
		return nil
	}

	var months []types.MonthlyReturn
	currentMonth := ""
	first, last := 0.0, 0.0

	flush := func() {
		if currentMonth == "" || first <= 0 {
			return
		}
		months = append(months, types.MonthlyReturn{
			Month:  currentMonth,
			Return: (last - first) / first * 100,
		})
	}

	for _, p := range curve {
		month := p.Date.Format("2006-01")
		if month != currentMonth {
			flush()
			currentMonth = month
			first = p.Equity
		}
		last = p.Equity
	}
	flush()

	return months
}

// BuildReturnMetrics derives the return metrics group from an equity curve.
// benchmarkReturn is the percent benchmark return over the same window; pass
// 0 when no benchmark applies.
func BuildReturnMetrics(curve []types.EquityPoint, benchmarkReturn float64) types.ReturnMetrics {
	m := types.ReturnMetrics{BenchmarkReturn: benchmarkReturn}
	if len(curve) == 0 {
		return m
	}

	m.TotalReturn = TotalReturn(curve)
	m.AnnualizedReturn = AnnualizedReturn(m.TotalReturn, len(curve), DefaultAnnualTradingDays)
	m.ExcessReturn = m.TotalReturn - benchmarkReturn
	m.Volatility = Volatility(DailyReturns(curve), DefaultAnnualTradingDays)
	m.MonthlyReturns = MonthlyReturns(curve)

	if len(m.MonthlyReturns) > 0 {
		best, worst := m.MonthlyReturns[0].Return, m.MonthlyReturns[0].Return
		winning := 0
		for _, month := range m.MonthlyReturns {
			if month.Return > best {
				best = month.Return
			}
			if month.Return < worst {
				worst = month.Return
			}
			if month.Return > 0 {
				winning++
			}
		}
		m.BestMonth = best
		m.WorstMonth = worst
		m.MonthlyWinRate = float64(winning) / float64(len(m.MonthlyReturns)) * 100
	}

	return m
}

// mean returns the arithmetic mean, 0 for an empty slice.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stdDev returns the sample standard deviation, 0 below two observations.
func stdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	avg := mean(values)
	sumSq := 0.0
	for _, v := range values {
		diff := v - avg
		sumSq += diff * diff
	}
	return math.Sqrt(sumSq / float64(len(values)-1))
}
