package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/qtlab/astock-backtest/pkg/types"
)

// Writer renders one analysis result into report files. It only formats:
// every number it writes was computed upstream.
type Writer struct {
	outputDir string
}

// NewWriter creates a writer targeting outputDir.
func NewWriter(outputDir string) *Writer {
	return &Writer{outputDir: outputDir}
}

// WriteAll writes the full report set: JSON result, trades CSV, equity
// curve CSV, monthly returns CSV, a plain-text summary and an XLSX
// workbook.
func (w *Writer) WriteAll(result *types.AnalysisResult) error {
	if err := os.MkdirAll(w.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := w.WriteJSON(result); err != nil {
		return err
	}
	if err := w.WriteTradesCSV(result.Trades); err != nil {
		return err
	}
	if err := w.WriteEquityCSV(result.EquityCurve); err != nil {
		return err
	}
	if err := w.WriteMonthlyCSV(result.ReturnMetrics.MonthlyReturns); err != nil {
		return err
	}
	if err := w.WriteSummary(result); err != nil {
		return err
	}
	return w.WriteWorkbook(result)
}

// WriteJSON writes the complete result as indented JSON.
func (w *Writer) WriteJSON(result *types.AnalysisResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	path := filepath.Join(w.outputDir, "result.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write JSON report: %w", err)
	}
	return nil
}

// WriteTradesCSV writes the trade list.
func (w *Writer) WriteTradesCSV(trades []types.DetailedTrade) error {
	return w.writeCSV("trades.csv",
		[]string{"Symbol", "Side", "EntryTime", "ExitTime", "EntryPrice", "ExitPrice", "Shares", "PnL", "PnLPercent", "HoldingDays", "Completed"},
		func(write func([]string) error) error {
			for _, t := range trades {
				exitTime := ""
				if !t.ExitTime.IsZero() {
					exitTime = t.ExitTime.Format("2006-01-02")
				}
				record := []string{
					t.Symbol,
					string(t.Side),
					t.EntryTime.Format("2006-01-02"),
					exitTime,
					fmt.Sprintf("%.2f", t.EntryPrice),
					fmt.Sprintf("%.2f", t.ExitPrice),
					fmt.Sprintf("%d", t.Shares),
					fmt.Sprintf("%.2f", t.PnL),
					fmt.Sprintf("%.2f", t.PnLPercent),
					fmt.Sprintf("%d", t.HoldingDays),
					fmt.Sprintf("%t", t.Completed),
				}
				if err := write(record); err != nil {
					return err
				}
			}
			return nil
		})
}

// WriteEquityCSV writes the equity curve.
func (w *Writer) WriteEquityCSV(curve []types.EquityPoint) error {
	return w.writeCSV("equity_curve.csv",
		[]string{"Date", "Equity", "Benchmark", "Cash", "Position"},
		func(write func([]string) error) error {
			for _, p := range curve {
				record := []string{
					p.Date.Format("2006-01-02"),
					fmt.Sprintf("%.2f", p.Equity),
					fmt.Sprintf("%.2f", p.Benchmark),
					fmt.Sprintf("%.2f", p.Cash),
					fmt.Sprintf("%.2f", p.Position),
				}
				if err := write(record); err != nil {
					return err
				}
			}
			return nil
		})
}

// WriteMonthlyCSV writes per-month returns.
func (w *Writer) WriteMonthlyCSV(months []types.MonthlyReturn) error {
	return w.writeCSV("monthly_returns.csv",
		[]string{"Month", "ReturnPct"},
		func(write func([]string) error) error {
			for _, m := range months {
				if err := write([]string{m.Month, fmt.Sprintf("%.4f", m.Return)}); err != nil {
					return err
				}
			}
			return nil
		})
}

// WriteSummary writes a human-readable summary report.
func (w *Writer) WriteSummary(result *types.AnalysisResult) error {
	path := filepath.Join(w.outputDir, "summary.txt")
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create summary: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "BACKTEST ANALYSIS SUMMARY\n")
	fmt.Fprintf(file, "=========================\n\n")

	fmt.Fprintf(file, "Period:\n")
	fmt.Fprintf(file, "  Start Date: %s\n", result.StartDate.Format("2006-01-02"))
	fmt.Fprintf(file, "  End Date: %s\n", result.EndDate.Format("2006-01-02"))
	fmt.Fprintf(file, "  Trading Days: %d (profit %d / loss %d)\n\n", result.TradingDays, result.ProfitDays, result.LossDays)

	fmt.Fprintf(file, "Returns:\n")
	fmt.Fprintf(file, "  Initial Capital: %.2f\n", result.InitialCapital)
	fmt.Fprintf(file, "  Final Capital: %.2f\n", result.FinalCapital)
	fmt.Fprintf(file, "  Total Return: %.2f%%\n", result.ReturnMetrics.TotalReturn)
	fmt.Fprintf(file, "  Annualized Return: %.2f%%\n", result.ReturnMetrics.AnnualizedReturn)
	fmt.Fprintf(file, "  Volatility: %.2f%%\n\n", result.ReturnMetrics.Volatility)

	fmt.Fprintf(file, "Risk:\n")
	fmt.Fprintf(file, "  Max Drawdown: %.2f%%\n", result.RiskMetrics.MaxDrawdown)
	fmt.Fprintf(file, "  Sharpe Ratio: %.2f\n", result.RiskMetrics.SharpeRatio)
	fmt.Fprintf(file, "  Sortino Ratio: %.2f\n", result.RiskMetrics.SortinoRatio)
	fmt.Fprintf(file, "  Calmar Ratio: %.2f\n", result.RiskMetrics.CalmarRatio)
	fmt.Fprintf(file, "  VaR 95%%: %.2f%%\n", result.RiskMetrics.VaR95)
	fmt.Fprintf(file, "  CVaR 95%%: %.2f%%\n\n", result.RiskMetrics.CVaR95)

	fmt.Fprintf(file, "Trading:\n")
	fmt.Fprintf(file, "  Total Trades: %d\n", result.TradingMetrics.TotalTrades)
	fmt.Fprintf(file, "  Win Rate: %.2f%%\n", result.TradingMetrics.WinRate)
	fmt.Fprintf(file, "  Profit Factor: %.2f\n", result.TradingMetrics.ProfitFactor)
	fmt.Fprintf(file, "  Max Win/Loss Streak: %d / %d\n\n", result.TradingMetrics.MaxWinStreak, result.TradingMetrics.MaxLossStreak)

	fmt.Fprintf(file, "Costs:\n")
	fmt.Fprintf(file, "  Total Commission: %.2f\n", result.TotalCommission)
	fmt.Fprintf(file, "  Total Stamp Duty: %.2f\n", result.TotalStampDuty)
	fmt.Fprintf(file, "  Total Fees: %.2f\n", result.TotalFees)
	fmt.Fprintf(file, "  Total Turnover: %.2f\n", result.TotalTurnover)

	if result.Diagnostics != nil {
		fmt.Fprintf(file, "\nDiagnostics:\n")
		fmt.Fprintf(file, "  Overall Score: %d/100\n", result.Diagnostics.OverallScore)
		fmt.Fprintf(file, "  Risk Level: %s\n", result.Diagnostics.RiskLevel)
		for _, issue := range result.Diagnostics.Issues {
			fmt.Fprintf(file, "  [%s] %s (%s)\n", issue.Severity, issue.Message, issue.Suggestion)
		}
		for _, h := range result.Diagnostics.Highlights {
			fmt.Fprintf(file, "  [+] %s\n", h.Message)
		}
	}

	return nil
}

func (w *Writer) writeCSV(name string, header []string, rows func(write func([]string) error) error) error {
	path := filepath.Join(w.outputDir, name)
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(header); err != nil {
		return err
	}
	return rows(writer.Write)
}

// timestamp is used in workbook metadata.
func timestamp() string {
	return time.Now().Format("2006-01-02 15:04:05")
}
