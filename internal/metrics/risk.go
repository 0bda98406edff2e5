package metrics

import (
	"math"
	"sort"
	"time"

	"github.com/qtlab/astock-backtest/pkg/types"
)

// DefaultRiskFreeRate is the annual risk-free rate used when the caller
// does not supply one.
const DefaultRiskFreeRate = 0.02

// DrawdownAnalysis is the outcome of a full drawdown pass over the curve.
type DrawdownAnalysis struct {
	Periods             []types.DrawdownPeriod
	MaxDrawdown         float64 // percent
	MaxDrawdownDuration int     // days, peak to trough of the deepest period
	CurrentDrawdown     float64 // percent, measured from the last point
}

// AnalyzeDrawdowns walks the curve once, tracking the running peak. A
// drawdown period opens when equity falls below the peak and closes when a
// new peak is reached, recording trough and recovery.
func AnalyzeDrawdowns(curve []types.EquityPoint) DrawdownAnalysis {
	var analysis DrawdownAnalysis
	if len(curve) == 0 {
		return analysis
	}

	peak := curve[0].Equity
	peakDate := curve[0].Date

	var open *types.DrawdownPeriod
	troughEquity := 0.0

	for _, p := range curve {
		if p.Equity >= peak {
			if open != nil {
				open.RecoveryDate = p.Date
				open.RecoveryDays = daysBetween(open.TroughDate, p.Date)
				open.Recovered = true
				analysis.Periods = append(analysis.Periods, *open)
				open = nil
			}
			peak = p.Equity
			peakDate = p.Date
			continue
		}

		if peak <= 0 {
			continue
		}
		depth := (peak - p.Equity) / peak * 100

		if open == nil {
			open = &types.DrawdownPeriod{
				PeakDate:   peakDate,
				TroughDate: p.Date,
				Depth:      depth,
			}
			troughEquity = p.Equity
		}
		if p.Equity <= troughEquity {
			troughEquity = p.Equity
			open.TroughDate = p.Date
			open.Depth = depth
		}
		open.DurationDays = daysBetween(open.PeakDate, open.TroughDate)
	}

	if open != nil {
		analysis.Periods = append(analysis.Periods, *open)
	}

	for _, period := range analysis.Periods {
		if period.Depth > analysis.MaxDrawdown {
			analysis.MaxDrawdown = period.Depth
			analysis.MaxDrawdownDuration = period.DurationDays
		}
	}

	last := curve[len(curve)-1].Equity
	if peak > 0 && last < peak {
		analysis.CurrentDrawdown = (peak - last) / peak * 100
	}

	return analysis
}

// SharpeRatio relates annualized excess return to annualized volatility.
// Both return and volatility are percentages; riskFreeRate is an annual
// fraction. Zero volatility resolves to 0.
func SharpeRatio(annualizedReturnPct, annualizedVolPct, riskFreeRate float64) float64 {
	if annualizedVolPct == 0 {
		return 0
	}
	return (annualizedReturnPct - riskFreeRate*100) / annualizedVolPct
}

// SortinoRatio replaces total volatility with downside deviation, the
// standard deviation of negative daily returns only. A zero downside
// deviation with positive excess return is unbounded.
func SortinoRatio(annualizedReturnPct float64, dailyReturnsPct []float64, riskFreeRate float64, annualTradingDays int) Ratio {
	var downside []float64
	for _, r := range dailyReturnsPct {
		if r < 0 {
			downside = append(downside, r)
		}
	}

	excess := annualizedReturnPct - riskFreeRate*100
	downsideDev := stdDev(downside) * math.Sqrt(float64(annualTradingDays))
	if downsideDev == 0 {
		if excess > 0 {
			return Unbounded()
		}
		return Bounded(0)
	}
	return Bounded(excess / downsideDev)
}

// CalmarRatio relates annualized return to maximum drawdown. Zero drawdown
// with positive return is unbounded.
func CalmarRatio(annualizedReturnPct, maxDrawdownPct float64) Ratio {
	if maxDrawdownPct == 0 {
		if annualizedReturnPct > 0 {
			return Unbounded()
		}
		return Bounded(0)
	}
	return Bounded(annualizedReturnPct / maxDrawdownPct)
}

// HistoricalVaR estimates Value-at-Risk at the given confidence from the
// empirical distribution: the return at index floor((1-c)*n) of the
// ascending sort, reported as a positive loss. A non-negative cutoff return
// means no loss at that confidence, reported as 0.
func HistoricalVaR(returnsPct []float64, confidence float64) float64 {
	if len(returnsPct) == 0 {
		return 0
	}
	sorted := sortedCopy(returnsPct)
	idx := varCutoffIndex(len(sorted), confidence)
	if sorted[idx] < 0 {
		return -sorted[idx]
	}
	return 0
}

// CVaR averages all returns at or below the VaR cutoff index, reported as a
// positive loss, 0 when the tail average is non-negative.
func CVaR(returnsPct []float64, confidence float64) float64 {
	if len(returnsPct) == 0 {
		return 0
	}
	sorted := sortedCopy(returnsPct)
	idx := varCutoffIndex(len(sorted), confidence)

	sum := 0.0
	for i := 0; i <= idx; i++ {
		sum += sorted[i]
	}
	avg := sum / float64(idx+1)
	if avg < 0 {
		return -avg
	}
	return 0
}

// BuildRiskMetrics derives the risk metrics group from an equity curve.
// riskFreeRate is an annual fraction (0.02 == 2%); ratios are capped at
// DefaultRatioCeiling before they leave this package.
func BuildRiskMetrics(curve []types.EquityPoint, riskFreeRate float64) types.RiskMetrics {
	var m types.RiskMetrics
	if len(curve) == 0 {
		return m
	}

	dd := AnalyzeDrawdowns(curve)
	m.MaxDrawdown = dd.MaxDrawdown
	m.MaxDrawdownDuration = dd.MaxDrawdownDuration
	m.CurrentDrawdown = dd.CurrentDrawdown
	m.DrawdownPeriods = dd.Periods

	daily := DailyReturns(curve)
	annualized := AnnualizedReturn(TotalReturn(curve), len(curve), DefaultAnnualTradingDays)
	volatility := Volatility(daily, DefaultAnnualTradingDays)

	m.SharpeRatio = Bounded(SharpeRatio(annualized, volatility, riskFreeRate)).Capped(DefaultRatioCeiling)
	m.SortinoRatio = SortinoRatio(annualized, daily, riskFreeRate, DefaultAnnualTradingDays).Capped(DefaultRatioCeiling)
	m.CalmarRatio = CalmarRatio(annualized, dd.MaxDrawdown).Capped(DefaultRatioCeiling)

	m.VaR95 = HistoricalVaR(daily, 0.95)
	m.VaR99 = HistoricalVaR(daily, 0.99)
	m.CVaR95 = CVaR(daily, 0.95)

	return m
}

func varCutoffIndex(n int, confidence float64) int {
	idx := int(math.Floor((1 - confidence) * float64(n)))
	if idx >= n {
		idx = n - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

func sortedCopy(values []float64) []float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return sorted
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
