package report

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/qtlab/astock-backtest/pkg/types"
)

// WriteWorkbook writes an XLSX workbook with Summary, Trades and Equity
// sheets for spreadsheet review.
func (w *Writer) WriteWorkbook(result *types.AnalysisResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeSummarySheet(f, result); err != nil {
		return err
	}
	if err := writeTradesSheet(f, result.Trades); err != nil {
		return err
	}
	if err := writeEquitySheet(f, result.EquityCurve); err != nil {
		return err
	}

	path := filepath.Join(w.outputDir, "report.xlsx")
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, result *types.AnalysisResult) error {
	const sheet = "Summary"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Generated", timestamp()},
		{"Start Date", result.StartDate.Format("2006-01-02")},
		{"End Date", result.EndDate.Format("2006-01-02")},
		{"Trading Days", result.TradingDays},
		{"Profit Days", result.ProfitDays},
		{"Loss Days", result.LossDays},
		{"Initial Capital", result.InitialCapital},
		{"Final Capital", result.FinalCapital},
		{"Total Return %", result.ReturnMetrics.TotalReturn},
		{"Annualized Return %", result.ReturnMetrics.AnnualizedReturn},
		{"Volatility %", result.ReturnMetrics.Volatility},
		{"Max Drawdown %", result.RiskMetrics.MaxDrawdown},
		{"Sharpe Ratio", result.RiskMetrics.SharpeRatio},
		{"Sortino Ratio", result.RiskMetrics.SortinoRatio},
		{"Calmar Ratio", result.RiskMetrics.CalmarRatio},
		{"VaR 95 %", result.RiskMetrics.VaR95},
		{"CVaR 95 %", result.RiskMetrics.CVaR95},
		{"Total Trades", result.TradingMetrics.TotalTrades},
		{"Win Rate %", result.TradingMetrics.WinRate},
		{"Profit Factor", result.TradingMetrics.ProfitFactor},
		{"Total Commission", result.TotalCommission},
		{"Total Stamp Duty", result.TotalStampDuty},
		{"Total Fees", result.TotalFees},
		{"Total Turnover", result.TotalTurnover},
	}
	if result.Diagnostics != nil {
		rows = append(rows,
			[]interface{}{"Overall Score", result.Diagnostics.OverallScore},
			[]interface{}{"Risk Level", string(result.Diagnostics.RiskLevel)},
		)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func writeTradesSheet(f *excelize.File, trades []types.DetailedTrade) error {
	const sheet = "Trades"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	header := []interface{}{"Symbol", "Side", "Entry Time", "Exit Time", "Entry Price", "Exit Price", "Shares", "PnL", "PnL %", "Holding Days"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, t := range trades {
		exitTime := ""
		if !t.ExitTime.IsZero() {
			exitTime = t.ExitTime.Format("2006-01-02")
		}
		row := []interface{}{
			t.Symbol,
			string(t.Side),
			t.EntryTime.Format("2006-01-02"),
			exitTime,
			t.EntryPrice,
			t.ExitPrice,
			t.Shares,
			t.PnL,
			t.PnLPercent,
			t.HoldingDays,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func writeEquitySheet(f *excelize.File, curve []types.EquityPoint) error {
	const sheet = "Equity"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	header := []interface{}{"Date", "Equity", "Benchmark"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, p := range curve {
		row := []interface{}{
			p.Date.Format("2006-01-02"),
			p.Equity,
			p.Benchmark,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
