package backtest

import (
	"github.com/sirupsen/logrus"

	"github.com/qtlab/astock-backtest/internal/cost"
	"github.com/qtlab/astock-backtest/internal/diagnose"
	"github.com/qtlab/astock-backtest/internal/metrics"
	"github.com/qtlab/astock-backtest/internal/validate"
	"github.com/qtlab/astock-backtest/pkg/money"
	"github.com/qtlab/astock-backtest/pkg/types"
)

// Analyzer turns an equity curve and a trade list into the full analysis
// result: cost totals, the three metrics groups and the diagnostic report.
// It holds no mutable state; one analyzer can serve concurrent runs.
type Analyzer struct {
	calc   *cost.Calculator
	scorer *diagnose.Scorer
	logger *logrus.Entry
}

// NewAnalyzer creates an analyzer for one fee schedule.
func NewAnalyzer(cfg types.CostConfig) *Analyzer {
	return &Analyzer{
		calc:   cost.NewCalculator(cfg),
		scorer: diagnose.NewDefaultScorer(),
		logger: logrus.WithField("component", "analyzer"),
	}
}

// Analyze validates the run request and derives the complete analysis.
// Outputs are a pure function of the inputs: identical inputs always yield
// identical results.
func (a *Analyzer) Analyze(curve []types.EquityPoint, trades []types.DetailedTrade, cfg types.BacktestConfig) (*types.AnalysisResult, error) {
	if result := validate.BacktestConfig(cfg); !result.IsValid {
		return nil, types.NewValidationError(types.CodeInvalidInput,
			"invalid backtest configuration: "+result.Errors[0].Field+": "+result.Errors[0].Message,
			"correct the configuration and retry")
	}
	if len(curve) == 0 {
		return nil, types.NewDataError(types.CodeInsufficientData,
			"equity curve is empty",
			"widen the date range or check the price history for the selected symbols")
	}
	for i := 1; i < len(curve); i++ {
		if !curve[i-1].Date.Before(curve[i].Date) {
			return nil, types.NewValidationError(types.CodeInvalidInput,
				"equity curve must be strictly ordered by date",
				"sort the curve and remove duplicate dates before analysis")
		}
	}

	riskFree := cfg.RiskFreeRate
	if riskFree == 0 {
		riskFree = metrics.DefaultRiskFreeRate
	}

	result := &types.AnalysisResult{
		StartDate:      curve[0].Date,
		EndDate:        curve[len(curve)-1].Date,
		TradingDays:    len(curve),
		InitialCapital: curve[0].Equity,
		FinalCapital:   curve[len(curve)-1].Equity,
		EquityCurve:    curve,
		Trades:         trades,
	}

	a.accumulateCosts(trades, result)
	a.countDailyOutcomes(curve, result)

	result.ReturnMetrics = metrics.BuildReturnMetrics(curve, benchmarkReturn(curve))
	result.RiskMetrics = metrics.BuildRiskMetrics(curve, riskFree)
	result.TradingMetrics = metrics.BuildTradingMetrics(trades, len(curve))
	result.Diagnostics = a.scorer.Run(result.ReturnMetrics, result.RiskMetrics, result.TradingMetrics)

	a.logger.WithFields(logrus.Fields{
		"trading_days": result.TradingDays,
		"trades":       result.TradingMetrics.TotalTrades,
		"score":        result.Diagnostics.OverallScore,
	}).Info("analysis complete")

	return result, nil
}

// accumulateCosts recomputes both-side transaction costs for every
// completed trade and keeps exact running totals, rounding only the final
// display values.
func (a *Analyzer) accumulateCosts(trades []types.DetailedTrade, result *types.AnalysisResult) {
	commission := money.Zero()
	stampDuty := money.Zero()
	fees := money.Zero()
	turnover := money.Zero()

	for _, t := range trades {
		if !t.Completed || t.Shares <= 0 || t.EntryPrice <= 0 || t.ExitPrice <= 0 {
			continue
		}
		rt, err := a.calc.RoundTripCost(t.EntryPrice, t.ExitPrice, t.Shares)
		if err != nil {
			// Guarded above; skip rather than poison the totals.
			continue
		}
		commission = commission.Add(rt.Buy.Commission).Add(rt.Sell.Commission)
		stampDuty = stampDuty.Add(rt.Sell.StampDuty)
		fees = fees.Add(rt.TotalCost)
		turnover = turnover.Add(rt.BuyValue).Add(rt.SellValue)
	}

	result.TotalCommission = commission.Round(2)
	result.TotalStampDuty = stampDuty.Round(2)
	result.TotalFees = fees.Round(2)
	result.TotalTurnover = turnover.Round(2)
}

func (a *Analyzer) countDailyOutcomes(curve []types.EquityPoint, result *types.AnalysisResult) {
	for _, r := range metrics.DailyReturns(curve) {
		if r > 0 {
			result.ProfitDays++
		} else if r < 0 {
			result.LossDays++
		}
	}
}

// benchmarkReturn derives the percent benchmark return when the curve
// carries benchmark samples, 0 otherwise.
func benchmarkReturn(curve []types.EquityPoint) float64 {
	first := curve[0].Benchmark
	last := curve[len(curve)-1].Benchmark
	if first <= 0 {
		return 0
	}
	return (last - first) / first * 100
}
