package market

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/qtlab/astock-backtest/pkg/types"
)

func TestMainBoardConfig(t *testing.T) {
	cfg := MainBoardConfig()

	assert.Equal(t, types.BoardMain, cfg.Board)
	assert.Equal(t, 0.0003, cfg.CommissionRate)
	assert.Equal(t, 0.001, cfg.StampDutyRate)
	assert.Equal(t, 0.00002, cfg.TransferFeeRate)
	assert.Equal(t, 5.0, cfg.MinCommission)
	assert.Equal(t, 100, cfg.LotSize)
	assert.Equal(t, 0.10, cfg.PriceLimit)
}

func TestSTARBoardConfig(t *testing.T) {
	cfg := STARBoardConfig()

	assert.Equal(t, types.BoardSTAR, cfg.Board)
	assert.Equal(t, 200, cfg.LotSize)
	assert.Equal(t, 0.20, cfg.PriceLimit)
	// Fee schedule is shared with the main board.
	assert.Equal(t, 0.0003, cfg.CommissionRate)
	assert.Equal(t, 0.001, cfg.StampDutyRate)
}

func TestChiNextBoardConfig(t *testing.T) {
	cfg := ChiNextBoardConfig()

	assert.Equal(t, types.BoardChiNext, cfg.Board)
	assert.Equal(t, 100, cfg.LotSize)
	assert.Equal(t, 0.20, cfg.PriceLimit)
}

func TestBoardConfig_UnknownFallsBackToMain(t *testing.T) {
	cfg := BoardConfig(types.Board("unknown"))
	assert.Equal(t, types.BoardMain, cfg.Board)
}

func TestNewCostConfig_MergesOverrides(t *testing.T) {
	cfg := NewCostConfig(types.BoardMain,
		WithCommissionRate(0.0005),
		WithSlippageRate(0.002),
		WithMinCommission(1),
	)

	assert.Equal(t, 0.0005, cfg.CommissionRate)
	assert.Equal(t, 0.002, cfg.SlippageRate)
	assert.Equal(t, 1.0, cfg.MinCommission)
	// Untouched fields keep the preset values.
	assert.Equal(t, 0.001, cfg.StampDutyRate)
	assert.Equal(t, 100, cfg.LotSize)
}
