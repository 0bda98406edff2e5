package validate

import (
	"fmt"
	"time"

	"github.com/qtlab/astock-backtest/pkg/types"
)

// Capital and date-range bounds for a backtest run.
const (
	MinCapital = 10_000
	MaxCapital = 10_000_000_000

	MinSpanDays  = 30
	MaxSpanYears = 20

	MaxPortfolioSize = 50
)

// Cost-rate upper bounds. Rates are fractions of trade value.
const (
	MaxCommissionRate  = 0.01   // 1%
	MaxStampDutyRate   = 0.01   // 1%
	MaxTransferFeeRate = 0.001  // 0.1%
	MaxSlippageRate    = 0.05   // 5%
	MaxMinCommission   = 100.0
)

// CostConfig checks a fee schedule against the rate bounds. Each violation
// names the offending field; nothing panics.
func CostConfig(cfg types.CostConfig) types.ValidationResult {
	result := types.ValidationResult{IsValid: true}

	checkRate(&result, "commission_rate", cfg.CommissionRate, MaxCommissionRate)
	checkRate(&result, "stamp_duty_rate", cfg.StampDutyRate, MaxStampDutyRate)
	checkRate(&result, "transfer_fee_rate", cfg.TransferFeeRate, MaxTransferFeeRate)
	checkRate(&result, "slippage_rate", cfg.SlippageRate, MaxSlippageRate)

	if cfg.MinCommission < 0 {
		result.AddError("min_commission", "minimum commission must not be negative")
	} else if cfg.MinCommission > MaxMinCommission {
		result.AddError("min_commission",
			fmt.Sprintf("minimum commission %.2f exceeds the %.0f bound", cfg.MinCommission, MaxMinCommission))
	}

	if cfg.LotSize <= 0 {
		result.AddError("lot_size", "lot size must be positive")
	}

	if cfg.PriceLimit <= 0 || cfg.PriceLimit >= 1 {
		result.AddError("price_limit", "price limit must be a fraction between 0 and 1")
	}

	return result
}

// BacktestConfig checks a full run request: capital bounds, date-range
// ordering and span, portfolio size and symbol duplication, and the
// embedded cost configuration.
func BacktestConfig(cfg types.BacktestConfig) types.ValidationResult {
	result := types.ValidationResult{IsValid: true}

	if cfg.InitialCapital < MinCapital {
		result.AddError("initial_capital",
			fmt.Sprintf("initial capital %.2f is below the %d minimum", cfg.InitialCapital, MinCapital))
	} else if cfg.InitialCapital > MaxCapital {
		result.AddError("initial_capital",
			fmt.Sprintf("initial capital %.2f exceeds the %d maximum", cfg.InitialCapital, MaxCapital))
	}

	checkDateRange(&result, cfg.StartDate, cfg.EndDate)
	checkPortfolio(&result, cfg.Symbols)

	costResult := CostConfig(cfg.Cost)
	if !costResult.IsValid {
		result.IsValid = false
		result.Errors = append(result.Errors, costResult.Errors...)
	}

	return result
}

func checkRate(result *types.ValidationResult, field string, rate, max float64) {
	if rate < 0 {
		result.AddError(field, field+" must not be negative")
		return
	}
	if rate > max {
		result.AddError(field, fmt.Sprintf("%s %.4f exceeds the %.4f bound", field, rate, max))
	}
}

func checkDateRange(result *types.ValidationResult, start, end time.Time) {
	if start.IsZero() {
		result.AddError("start_date", "start date is required")
	}
	if end.IsZero() {
		result.AddError("end_date", "end date is required")
	}
	if start.IsZero() || end.IsZero() {
		return
	}

	if !start.Before(end) {
		result.AddError("start_date", "start date must be before end date")
		return
	}

	span := end.Sub(start)
	if span < MinSpanDays*24*time.Hour {
		result.AddError("end_date",
			fmt.Sprintf("date range must span at least %d days", MinSpanDays))
	}
	if end.After(start.AddDate(MaxSpanYears, 0, 0)) {
		result.AddError("end_date",
			fmt.Sprintf("date range must not span more than %d years", MaxSpanYears))
	}
}

func checkPortfolio(result *types.ValidationResult, symbols []string) {
	if len(symbols) == 0 {
		result.AddError("symbols", "at least one symbol is required")
		return
	}
	if len(symbols) > MaxPortfolioSize {
		result.AddError("symbols",
			fmt.Sprintf("portfolio holds %d symbols, more than the %d maximum", len(symbols), MaxPortfolioSize))
	}

	seen := make(map[string]bool, len(symbols))
	for _, s := range symbols {
		if s == "" {
			result.AddError("symbols", "symbols must not be empty strings")
			continue
		}
		if seen[s] {
			result.AddError("symbols", "duplicate symbol: "+s)
		}
		seen[s] = true
	}
}
