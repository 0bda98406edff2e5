package backtest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qtlab/astock-backtest/internal/market"
	"github.com/qtlab/astock-backtest/pkg/types"
)

func testConfig() types.BacktestConfig {
	return types.BacktestConfig{
		StartDate:      time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2023, 12, 29, 0, 0, 0, 0, time.UTC),
		InitialCapital: 1_000_000,
		Symbols:        []string{"600519"},
		Board:          types.BoardMain,
		Cost:           market.MainBoardConfig(),
	}
}

func testCurve(equities ...float64) []types.EquityPoint {
	base := time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC)
	points := make([]types.EquityPoint, len(equities))
	for i, e := range equities {
		points[i] = types.EquityPoint{Date: base.AddDate(0, 0, i), Equity: e}
	}
	return points
}

func testTrades() []types.DetailedTrade {
	entry := time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)
	return []types.DetailedTrade{
		{
			Symbol: "600519", Side: types.SideSell,
			EntryPrice: 10, ExitPrice: 11, Shares: 1000,
			PnL: 957.58, PnLPercent: 9.58, HoldingDays: 5,
			EntryTime: entry, ExitTime: entry.AddDate(0, 0, 5),
			Completed: true,
		},
		{
			Symbol: "000001", Side: types.SideSell,
			EntryPrice: 20, ExitPrice: 19, Shares: 500,
			PnL: -1050, PnLPercent: -5.25, HoldingDays: 3,
			EntryTime: entry, ExitTime: entry.AddDate(0, 0, 3),
			Completed: true,
		},
		{
			// Open position: excluded from trade metrics and cost totals.
			Symbol: "300750", Side: types.SideBuy,
			EntryPrice: 30, Shares: 200,
			EntryTime: entry,
		},
	}
}

func TestAnalyze(t *testing.T) {
	analyzer := NewAnalyzer(market.MainBoardConfig())
	curve := testCurve(1_000_000, 1_010_000, 1_004_000, 1_020_000, 1_015_000)

	result, err := analyzer.Analyze(curve, testTrades(), testConfig())
	require.NoError(t, err)

	assert.Equal(t, 5, result.TradingDays)
	assert.Equal(t, 1_000_000.0, result.InitialCapital)
	assert.Equal(t, 1_015_000.0, result.FinalCapital)
	assert.Equal(t, 2, result.ProfitDays)
	assert.Equal(t, 2, result.LossDays)

	assert.Equal(t, 2, result.TradingMetrics.TotalTrades)
	assert.InDelta(t, 50.0, result.TradingMetrics.WinRate, 1e-9)
	assert.InDelta(t, 1.5, result.ReturnMetrics.TotalReturn, 1e-9)

	require.NotNil(t, result.Diagnostics)
	assert.GreaterOrEqual(t, result.Diagnostics.OverallScore, 0)
	assert.LessOrEqual(t, result.Diagnostics.OverallScore, 100)
}

func TestAnalyze_CostTotals(t *testing.T) {
	analyzer := NewAnalyzer(market.MainBoardConfig())
	curve := testCurve(1_000_000, 1_001_000)

	result, err := analyzer.Analyze(curve, testTrades(), testConfig())
	require.NoError(t, err)

	// Trade 1: 10x1000 -> 11x1000. Commissions 5 + 5, stamp 11, total 42.42.
	// Trade 2: 20x500 -> 19x500. Commissions 5 + 5, stamp 9.5, total 39.39.
	assert.InDelta(t, 20.0, result.TotalCommission, 1e-9)
	assert.InDelta(t, 20.5, result.TotalStampDuty, 1e-9)
	assert.InDelta(t, 81.81, result.TotalFees, 1e-9)
	assert.InDelta(t, 40500.0, result.TotalTurnover, 1e-9)
}

func TestAnalyze_EmptyCurve(t *testing.T) {
	analyzer := NewAnalyzer(market.MainBoardConfig())

	_, err := analyzer.Analyze(nil, nil, testConfig())
	require.Error(t, err)
	assert.True(t, types.IsCode(err, types.CodeInsufficientData))
}

func TestAnalyze_InvalidConfig(t *testing.T) {
	analyzer := NewAnalyzer(market.MainBoardConfig())
	cfg := testConfig()
	cfg.InitialCapital = 1

	_, err := analyzer.Analyze(testCurve(100, 200), nil, cfg)
	require.Error(t, err)
	assert.True(t, types.IsCode(err, types.CodeInvalidInput))
}

func TestAnalyze_UnorderedCurve(t *testing.T) {
	analyzer := NewAnalyzer(market.MainBoardConfig())
	curve := testCurve(1_000_000, 1_010_000, 1_020_000)
	curve[1].Date = curve[2].Date

	_, err := analyzer.Analyze(curve, nil, testConfig())
	require.Error(t, err)
	assert.True(t, types.IsCode(err, types.CodeInvalidInput))
}

func TestAnalyze_NoTradesIsInformational(t *testing.T) {
	analyzer := NewAnalyzer(market.MainBoardConfig())

	result, err := analyzer.Analyze(testCurve(1_000_000, 1_005_000, 1_002_000), nil, testConfig())
	require.NoError(t, err)

	assert.Equal(t, 0, result.TradingMetrics.TotalTrades)
	var found bool
	for _, issue := range result.Diagnostics.Issues {
		if issue.ID == "no_trades" {
			found = true
			assert.Equal(t, types.SeverityInfo, issue.Severity)
		}
	}
	assert.True(t, found, "no_trades issue expected")
}

func TestAnalyze_BenchmarkReturn(t *testing.T) {
	analyzer := NewAnalyzer(market.MainBoardConfig())
	curve := testCurve(1_000_000, 1_010_000, 1_030_000)
	curve[0].Benchmark = 3000
	curve[1].Benchmark = 3030
	curve[2].Benchmark = 3060

	result, err := analyzer.Analyze(curve, nil, testConfig())
	require.NoError(t, err)

	assert.InDelta(t, 2.0, result.ReturnMetrics.BenchmarkReturn, 1e-9)
	assert.InDelta(t, 1.0, result.ReturnMetrics.ExcessReturn, 1e-9)
}

func TestAnalyze_Deterministic(t *testing.T) {
	analyzer := NewAnalyzer(market.MainBoardConfig())
	curve := testCurve(1_000_000, 995_000, 1_012_000, 1_008_000)

	first, err := analyzer.Analyze(curve, testTrades(), testConfig())
	require.NoError(t, err)
	second, err := analyzer.Analyze(curve, testTrades(), testConfig())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
