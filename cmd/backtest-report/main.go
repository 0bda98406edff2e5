package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/qtlab/astock-backtest/internal/backtest"
	"github.com/qtlab/astock-backtest/internal/config"
	"github.com/qtlab/astock-backtest/internal/report"
	"github.com/qtlab/astock-backtest/pkg/types"
)

func main() {
	var (
		configFile = flag.String("config", "backtest.yaml", "Backtest config file (YAML or JSON)")
		equityFile = flag.String("equity", "", "Equity curve CSV file")
		tradesFile = flag.String("trades", "", "Trades JSON file (optional)")
		outputDir  = flag.String("output", "", "Output directory (overrides config)")
		logFile    = flag.String("log-file", "", "Log file path (rotated; stdout if empty)")
		verbose    = flag.Bool("verbose", false, "Enable debug logging")
	)
	flag.Parse()

	setupLogging(*logFile, *verbose)

	if *equityFile == "" {
		logrus.Fatal("an equity curve file is required (-equity)")
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}

	curve, err := report.ReadEquityCSV(*equityFile)
	if err != nil {
		logrus.Fatalf("Failed to load equity curve: %v", err)
	}

	var trades []types.DetailedTrade
	if *tradesFile != "" {
		trades, err = report.ReadTradesJSON(*tradesFile)
		if err != nil {
			logrus.Fatalf("Failed to load trades: %v", err)
		}
	}

	analyzer := backtest.NewAnalyzer(cfg.Cost)
	result, err := analyzer.Analyze(curve, trades, *cfg)
	if err != nil {
		logrus.Fatalf("Analysis failed: %v", err)
	}

	displaySummary(result)

	writer := report.NewWriter(cfg.OutputDir)
	if err := writer.WriteAll(result); err != nil {
		logrus.Fatalf("Failed to write reports: %v", err)
	}
	fmt.Printf("\nReports saved to %s\n", cfg.OutputDir)
}

func setupLogging(logFile string, verbose bool) {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if logFile == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
		logrus.Fatalf("Failed to create log directory: %v", err)
	}
	rotated := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    50, // MB
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}
	logrus.SetOutput(io.MultiWriter(os.Stdout, rotated))
}

func displaySummary(result *types.AnalysisResult) {
	fmt.Printf("\n=== Backtest Analysis ===\n")
	fmt.Printf("Period: %s to %s (%d trading days)\n",
		result.StartDate.Format("2006-01-02"),
		result.EndDate.Format("2006-01-02"),
		result.TradingDays)
	fmt.Printf("Final Capital: %.2f\n", result.FinalCapital)
	fmt.Printf("Total Return: %.2f%%\n", result.ReturnMetrics.TotalReturn)
	fmt.Printf("Annualized Return: %.2f%%\n", result.ReturnMetrics.AnnualizedReturn)
	fmt.Printf("Max Drawdown: %.2f%%\n", result.RiskMetrics.MaxDrawdown)
	fmt.Printf("Sharpe Ratio: %.2f\n", result.RiskMetrics.SharpeRatio)

	if result.TradingMetrics.TotalTrades > 0 {
		fmt.Printf("\n=== Trade Statistics ===\n")
		fmt.Printf("Total Trades: %d\n", result.TradingMetrics.TotalTrades)
		fmt.Printf("Win Rate: %.2f%%\n", result.TradingMetrics.WinRate)
		fmt.Printf("Profit Factor: %.2f\n", result.TradingMetrics.ProfitFactor)
		fmt.Printf("Average Win: %.2f\n", result.TradingMetrics.AvgWin)
		fmt.Printf("Average Loss: %.2f\n", result.TradingMetrics.AvgLoss)
	}

	fmt.Printf("\n=== Costs ===\n")
	fmt.Printf("Commission: %.2f\n", result.TotalCommission)
	fmt.Printf("Stamp Duty: %.2f\n", result.TotalStampDuty)
	fmt.Printf("Total Fees: %.2f\n", result.TotalFees)

	if result.Diagnostics != nil {
		fmt.Printf("\n=== Diagnostics ===\n")
		fmt.Printf("Score: %d/100 (risk: %s)\n", result.Diagnostics.OverallScore, result.Diagnostics.RiskLevel)
		for _, issue := range result.Diagnostics.Issues {
			fmt.Printf("[%s] %s\n", issue.Severity, issue.Message)
		}
		for _, h := range result.Diagnostics.Highlights {
			fmt.Printf("[+] %s\n", h.Message)
		}
	}
}
