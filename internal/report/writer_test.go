package report

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/qtlab/astock-backtest/pkg/types"
)

func sampleResult() *types.AnalysisResult {
	day := func(d int) time.Time {
		return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
	}
	return &types.AnalysisResult{
		StartDate:       day(2),
		EndDate:         day(5),
		TradingDays:     4,
		ProfitDays:      2,
		LossDays:        1,
		InitialCapital:  1000000,
		FinalCapital:    1015000,
		TotalCommission: 20.0,
		TotalStampDuty:  20.5,
		TotalFees:       81.81,
		TotalTurnover:   40500,
		ReturnMetrics: types.ReturnMetrics{
			TotalReturn:      1.5,
			AnnualizedReturn: 12.4,
			Volatility:       18.2,
			MonthlyReturns: []types.MonthlyReturn{
				{Month: "2024-01", Return: 1.5},
			},
		},
		RiskMetrics: types.RiskMetrics{
			MaxDrawdown:  0.59,
			SharpeRatio:  1.2,
			SortinoRatio: 1.8,
			CalmarRatio:  2.1,
			VaR95:        0.8,
			CVaR95:       1.1,
		},
		TradingMetrics: types.TradingMetrics{
			TotalTrades:   2,
			WinningTrades: 1,
			LosingTrades:  1,
			WinRate:       50,
			ProfitFactor:  1.4,
			MaxWinStreak:  1,
			MaxLossStreak: 1,
		},
		Diagnostics: &types.DiagnosticReport{
			OverallScore: 90,
			RiskLevel:    types.RiskLevelMedium,
			Issues: []types.Issue{

				{ID: "volatility_high", Severity: types.SeverityWarning, Message: "volatility is elevated", Suggestion: "reduce position sizes"},
			},
			Highlights: []types.Highlight{
				{ID: "sharpe_strong", Message: "strong risk-adjusted returns", Value: 1.2},
			},
		},
		EquityCurve: []types.EquityPoint{
			{Date: day(2), Equity: 1000000, Benchmark: 1000000},
			{Date: day(3), Equity: 1010000, Benchmark: 1005000},
			{Date: day(4), Equity: 1004000, Benchmark: 1003000},
			{Date: day(5), Equity: 1015000, Benchmark: 1008000},
		},
		Trades: []types.DetailedTrade{
			{Symbol: "600519", Side: types.SideBuy, EntryPrice: 10, ExitPrice: 11, Shares: 1000, PnL: 957.58, PnLPercent: 9.58, HoldingDays: 2, EntryTime: day(2), ExitTime: day(4), Completed: true},
			{Symbol: "000001", Side: types.SideBuy, EntryPrice: 20, Shares: 500, EntryTime: day(4), Completed: false},
		},
	}
}

func TestWriteAll(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	err := w.WriteAll(sampleResult())
	require.NoError(t, err)

	for _, name := range []string{"result.json", "trades.csv", "equity_curve.csv", "monthly_returns.csv", "summary.txt", "report.xlsx"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)
	result := sampleResult()

	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, w.WriteJSON(result))

	data, err := os.ReadFile(filepath.Join(dir, "result.json"))
	require.NoError(t, err)

	var decoded types.AnalysisResult
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, result.InitialCapital, decoded.InitialCapital)
	assert.Equal(t, result.ReturnMetrics.TotalReturn, decoded.ReturnMetrics.TotalReturn)
	assert.Equal(t, result.Diagnostics.OverallScore, decoded.Diagnostics.OverallScore)
	assert.Len(t, decoded.Trades, 2)
}

func TestWriteTradesCSV(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)
	result := sampleResult()

	require.NoError(t, w.WriteTradesCSV(result.Trades))

	file, err := os.Open(filepath.Join(dir, "trades.csv"))
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3) // header + 2 trades

	assert.Equal(t, "Symbol", records[0][0])
	assert.Equal(t, "600519", records[1][0])
	assert.Equal(t, "2024-01-04", records[1][3])
	// open trade has no exit time
	assert.Equal(t, "", records[2][3])
	assert.Equal(t, "false", records[2][10])
}

func TestWriteEquityCSV(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)
	result := sampleResult()

	require.NoError(t, w.WriteEquityCSV(result.EquityCurve))

	file, err := os.Open(filepath.Join(dir, "equity_curve.csv"))
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5)
	assert.Equal(t, "2024-01-02", records[1][0])
	assert.Equal(t, "1000000.00", records[1][1])
	assert.Equal(t, "1015000.00", records[4][1])
}

func TestWriteSummaryContent(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	require.NoError(t, w.WriteSummary(sampleResult()))

	data, err := os.ReadFile(filepath.Join(dir, "summary.txt"))
	require.NoError(t, err)
	text := string(data)

	assert.True(t, strings.Contains(text, "Total Return: 1.50%"))
	assert.True(t, strings.Contains(text, "Sharpe Ratio: 1.20"))
	assert.True(t, strings.Contains(text, "Overall Score: 90/100"))
	assert.True(t, strings.Contains(text, "Risk Level: medium"))
	assert.True(t, strings.Contains(text, "volatility is elevated"))
	assert.True(t, strings.Contains(text, "[+] strong risk-adjusted returns"))
}

func TestWriteWorkbook(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)

	require.NoError(t, w.WriteWorkbook(sampleResult()))

	f, err := excelize.OpenFile(filepath.Join(dir, "report.xlsx"))
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Summary", "Trades", "Equity"}, f.GetSheetList())

	v, err := f.GetCellValue("Trades", "A2")
	require.NoError(t, err)
	assert.Equal(t, "600519", v)

	v, err = f.GetCellValue("Equity", "B5")
	require.NoError(t, err)
	assert.Equal(t, "1015000", v)
}
