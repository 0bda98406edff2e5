package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/qtlab/astock-backtest/internal/market"
	"github.com/qtlab/astock-backtest/internal/validate"
	"github.com/qtlab/astock-backtest/pkg/types"
)

const dateLayout = "2006-01-02"

// fileConfig mirrors the on-disk layout. Dates are strings so YAML and
// JSON files can use plain "2006-01-02" values.
type fileConfig struct {
	StartDate      string           `mapstructure:"start_date"`
	EndDate        string           `mapstructure:"end_date"`
	InitialCapital float64          `mapstructure:"initial_capital"`
	Symbols        []string         `mapstructure:"symbols"`
	Board          string           `mapstructure:"board"`
	RiskFreeRate   float64          `mapstructure:"risk_free_rate"`
	OutputDir      string           `mapstructure:"output_dir"`
	Cost           types.CostConfig `mapstructure:"cost"`
}

// Load reads a backtest configuration from a YAML or JSON file, merges
// board preset costs under any explicit cost overrides, and validates
// the result.
func Load(path string) (*types.BacktestConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetDefault("initial_capital", 1000000.0)
	v.SetDefault("board", string(types.BoardMain))
	v.SetDefault("output_dir", "output")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var fc fileConfig
	if err := v.Unmarshal(&fc); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg, err := build(v, &fc)
	if err != nil {
		return nil, err
	}

	if result := validate.BacktestConfig(*cfg); !result.IsValid {
		e := result.Errors[0]
		return nil, types.NewValidationError(types.CodeInvalidInput,
			fmt.Sprintf("%s: %s", e.Field, e.Message),
			"fix the configuration file and retry")
	}
	return cfg, nil
}

func build(v *viper.Viper, fc *fileConfig) (*types.BacktestConfig, error) {
	board := types.Board(strings.ToLower(fc.Board))

	start, err := parseDate("start_date", fc.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate("end_date", fc.EndDate)
	if err != nil {
		return nil, err
	}

	// Board preset first, then only the cost keys actually present in
	// the file override it. Unmarshal alone cannot distinguish an
	// explicit zero from an absent key.
	cost := market.BoardConfig(board)
	board = cost.Board // unknown boards resolve to main board rules
	applyCostOverrides(v, &cost)

	return &types.BacktestConfig{
		StartDate:      start,
		EndDate:        end,
		InitialCapital: fc.InitialCapital,
		Symbols:        fc.Symbols,
		Board:          board,
		Cost:           cost,
		RiskFreeRate:   fc.RiskFreeRate,
		OutputDir:      fc.OutputDir,
	}, nil
}

func applyCostOverrides(v *viper.Viper, cost *types.CostConfig) {
	if v.IsSet("cost.commission_rate") {
		cost.CommissionRate = v.GetFloat64("cost.commission_rate")
	}
	if v.IsSet("cost.stamp_duty_rate") {
		cost.StampDutyRate = v.GetFloat64("cost.stamp_duty_rate")
	}
	if v.IsSet("cost.transfer_fee_rate") {
		cost.TransferFeeRate = v.GetFloat64("cost.transfer_fee_rate")
	}
	if v.IsSet("cost.slippage_rate") {
		cost.SlippageRate = v.GetFloat64("cost.slippage_rate")
	}
	if v.IsSet("cost.min_commission") {
		cost.MinCommission = v.GetFloat64("cost.min_commission")
	}
	if v.IsSet("cost.lot_size") {
		cost.LotSize = v.GetInt("cost.lot_size")
	}
	if v.IsSet("cost.price_limit") {
		cost.PriceLimit = v.GetFloat64("cost.price_limit")
	}
}

func parseDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, types.NewValidationError(types.CodeInvalidInput,
			fmt.Sprintf("%s is required", field),
			"set the date as YYYY-MM-DD")
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, types.NewValidationError(types.CodeInvalidInput,
			fmt.Sprintf("%s %q is not a valid date", field, value),
			"use the YYYY-MM-DD format")
	}
	return t, nil
}
