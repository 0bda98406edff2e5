package validate

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qtlab/astock-backtest/internal/market"
	"github.com/qtlab/astock-backtest/pkg/types"
)

func validBacktestConfig() types.BacktestConfig {
	return types.BacktestConfig{
		StartDate:      time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		InitialCapital: 1_000_000,
		Symbols:        []string{"600519", "000001"},
		Board:          types.BoardMain,
		Cost:           market.MainBoardConfig(),
	}
}

func fieldErrors(result types.ValidationResult, field string) []string {
	var messages []string
	for _, e := range result.Errors {
		if e.Field == field {
			messages = append(messages, e.Message)
		}
	}
	return messages
}

func TestCostConfig_BoardPresetsAreValid(t *testing.T) {
	for _, cfg := range []types.CostConfig{
		market.MainBoardConfig(),
		market.STARBoardConfig(),
		market.ChiNextBoardConfig(),
	} {
		result := CostConfig(cfg)
		assert.True(t, result.IsValid, "board %s: %v", cfg.Board, result.Errors)
	}
}

func TestCostConfig_RateBounds(t *testing.T) {
	tests := []struct {
		name  string
		field string
		mut   market.Option
	}{
		{"commission above 1%", "commission_rate", market.WithCommissionRate(0.011)},
		{"stamp duty above 1%", "stamp_duty_rate", market.WithStampDutyRate(0.02)},
		{"transfer fee above 0.1%", "transfer_fee_rate", market.WithTransferFeeRate(0.002)},
		{"slippage above 5%", "slippage_rate", market.WithSlippageRate(0.06)},
		{"negative stamp duty", "stamp_duty_rate", market.WithStampDutyRate(-0.001)},
		{"min commission above 100", "min_commission", market.WithMinCommission(150)},
		{"negative min commission", "min_commission", market.WithMinCommission(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CostConfig(market.NewCostConfig(types.BoardMain, tt.mut))
			assert.False(t, result.IsValid)
			require.NotEmpty(t, fieldErrors(result, tt.field))
		})
	}
}

func TestCostConfig_ErrorMessagesAreDistinguishable(t *testing.T) {
	high := CostConfig(market.NewCostConfig(types.BoardMain, market.WithCommissionRate(0.02)))
	negative := CostConfig(market.NewCostConfig(types.BoardMain, market.WithCommissionRate(-0.001)))

	require.Len(t, high.Errors, 1)
	require.Len(t, negative.Errors, 1)
	assert.NotEqual(t, high.Errors[0].Message, negative.Errors[0].Message)
	assert.True(t, strings.Contains(high.Errors[0].Message, "exceeds"))
}

func TestCostConfig_StructuralFields(t *testing.T) {
	cfg := market.MainBoardConfig()
	cfg.LotSize = 0
	cfg.PriceLimit = 1.5

	result := CostConfig(cfg)
	assert.False(t, result.IsValid)
	assert.NotEmpty(t, fieldErrors(result, "lot_size"))
	assert.NotEmpty(t, fieldErrors(result, "price_limit"))
}

func TestBacktestConfig_Valid(t *testing.T) {
	result := BacktestConfig(validBacktestConfig())
	assert.True(t, result.IsValid, "%v", result.Errors)
	assert.Empty(t, result.Errors)
}

func TestBacktestConfig_CapitalBounds(t *testing.T) {
	cfg := validBacktestConfig()
	cfg.InitialCapital = 500
	result := BacktestConfig(cfg)
	assert.False(t, result.IsValid)
	assert.NotEmpty(t, fieldErrors(result, "initial_capital"))

	cfg.InitialCapital = 2e10
	result = BacktestConfig(cfg)
	assert.False(t, result.IsValid)
	assert.NotEmpty(t, fieldErrors(result, "initial_capital"))
}

func TestBacktestConfig_DateRange(t *testing.T) {
	cfg := validBacktestConfig()
	cfg.StartDate, cfg.EndDate = cfg.EndDate, cfg.StartDate
	result := BacktestConfig(cfg)
	assert.NotEmpty(t, fieldErrors(result, "start_date"))

	cfg = validBacktestConfig()
	cfg.EndDate = cfg.StartDate.AddDate(0, 0, 10)
	result = BacktestConfig(cfg)
	assert.NotEmpty(t, fieldErrors(result, "end_date"))

	cfg = validBacktestConfig()
	cfg.EndDate = cfg.StartDate.AddDate(25, 0, 0)
	result = BacktestConfig(cfg)
	assert.NotEmpty(t, fieldErrors(result, "end_date"))

	cfg = validBacktestConfig()
	cfg.StartDate = time.Time{}
	result = BacktestConfig(cfg)
	assert.NotEmpty(t, fieldErrors(result, "start_date"))
}

func TestBacktestConfig_Portfolio(t *testing.T) {
	cfg := validBacktestConfig()
	cfg.Symbols = nil
	result := BacktestConfig(cfg)
	assert.NotEmpty(t, fieldErrors(result, "symbols"))

	cfg = validBacktestConfig()
	cfg.Symbols = []string{"600519", "600519"}
	result = BacktestConfig(cfg)
	messages := fieldErrors(result, "symbols")
	require.NotEmpty(t, messages)
	assert.Contains(t, messages[0], "duplicate")

	cfg = validBacktestConfig()
	cfg.Symbols = make([]string, MaxPortfolioSize+1)
	for i := range cfg.Symbols {
		cfg.Symbols[i] = string(rune('A' + i%26)) // contents irrelevant here
	}
	result = BacktestConfig(cfg)
	assert.NotEmpty(t, fieldErrors(result, "symbols"))
}

func TestBacktestConfig_EmbeddedCostErrorsPropagate(t *testing.T) {
	cfg := validBacktestConfig()
	cfg.Cost.SlippageRate = 0.5

	result := BacktestConfig(cfg)
	assert.False(t, result.IsValid)
	assert.NotEmpty(t, fieldErrors(result, "slippage_rate"))
}
