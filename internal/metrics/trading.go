package metrics

import (
	"github.com/qtlab/astock-backtest/pkg/types"
)

// TradingDaysPerMonth converts a trading-day count into months for the
// trading-frequency metric.
const TradingDaysPerMonth = 21

// BuildTradingMetrics derives trade-level statistics. Only completed trades
// count; open positions are ignored. A trade with non-positive P&L counts
// as losing, so winning + losing always equals the total.
func BuildTradingMetrics(trades []types.DetailedTrade, tradingDays int) types.TradingMetrics {
	var m types.TradingMetrics

	var completed []types.DetailedTrade
	for _, t := range trades {
		if t.Completed {
			completed = append(completed, t)
		}
	}
	m.TotalTrades = len(completed)
	if m.TotalTrades == 0 {
		return m
	}

	var winSum, lossSum, holdingSum float64
	winStreak, lossStreak := 0, 0
	m.BestTrade = completed[0].PnLPercent
	m.WorstTrade = completed[0].PnLPercent

	for _, t := range completed {
		if t.PnLPercent > m.BestTrade {
			m.BestTrade = t.PnLPercent
		}
		if t.PnLPercent < m.WorstTrade {
			m.WorstTrade = t.PnLPercent
		}
		holdingSum += float64(t.HoldingDays)

		if t.PnL > 0 {
			m.WinningTrades++
			winSum += t.PnLPercent
			winStreak++
			lossStreak = 0
			if winStreak > m.MaxWinStreak {
				m.MaxWinStreak = winStreak
			}
		} else {
			m.LosingTrades++
			lossSum += t.PnLPercent
			lossStreak++
			winStreak = 0
			if lossStreak > m.MaxLossStreak {
				m.MaxLossStreak = lossStreak
			}
		}
	}

	m.WinRate = float64(m.WinningTrades) / float64(m.TotalTrades) * 100
	m.ProfitFactor = profitFactor(winSum, lossSum).Capped(DefaultRatioCeiling)

	if m.WinningTrades > 0 {
		m.AvgWin = winSum / float64(m.WinningTrades)
	}
	if m.LosingTrades > 0 {
		m.AvgLoss = lossSum / float64(m.LosingTrades)
	}
	m.AvgHoldingDays = holdingSum / float64(m.TotalTrades)

	if tradingDays > 0 {
		m.TradingFrequency = float64(m.TotalTrades) / (float64(tradingDays) / TradingDaysPerMonth)
	}

	return m
}

// profitFactor relates gross percent wins to gross percent losses. Zero
// losses with positive wins is unbounded; no wins and no losses is 0.
func profitFactor(winSum, lossSum float64) Ratio {
	losses := -lossSum
	if losses == 0 {
		if winSum > 0 {
			return Unbounded()
		}
		return Bounded(0)
	}
	return Bounded(winSum / losses)
}
