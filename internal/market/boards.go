package market

import (
	"github.com/qtlab/astock-backtest/pkg/types"
)

// Default fee schedule shared by all boards. Rates are fractions of trade
// value; stamp duty applies to the sell side only.
const (
	DefaultCommissionRate  = 0.0003  // 0.03%
	DefaultStampDutyRate   = 0.001   // 0.1%
	DefaultTransferFeeRate = 0.00002 // 0.002%
	DefaultSlippageRate    = 0.001   // 0.1%
	DefaultMinCommission   = 5.0
)

// Board trading rules.
const (
	MainBoardLotSize    = 100
	MainBoardPriceLimit = 0.10

	STARBoardLotSize    = 200
	STARBoardPriceLimit = 0.20

	ChiNextLotSize    = 100
	ChiNextPriceLimit = 0.20
)

// MainBoardConfig returns the fee schedule for the Shanghai/Shenzhen main
// board: 10% daily price limit, 100-share lots.
func MainBoardConfig() types.CostConfig {
	return types.CostConfig{
		Board:           types.BoardMain,
		CommissionRate:  DefaultCommissionRate,
		StampDutyRate:   DefaultStampDutyRate,
		TransferFeeRate: DefaultTransferFeeRate,
		SlippageRate:    DefaultSlippageRate,
		MinCommission:   DefaultMinCommission,
		LotSize:         MainBoardLotSize,
		PriceLimit:      MainBoardPriceLimit,
	}
}

// STARBoardConfig returns the fee schedule for the STAR Market: 20% daily
// price limit, 200-share lots.
func STARBoardConfig() types.CostConfig {
	cfg := MainBoardConfig()
	cfg.Board = types.BoardSTAR
	cfg.LotSize = STARBoardLotSize
	cfg.PriceLimit = STARBoardPriceLimit
	return cfg
}

// ChiNextBoardConfig returns the fee schedule for ChiNext: 20% daily price
// limit, 100-share lots.
func ChiNextBoardConfig() types.CostConfig {
	cfg := MainBoardConfig()
	cfg.Board = types.BoardChiNext
	cfg.LotSize = ChiNextLotSize
	cfg.PriceLimit = ChiNextPriceLimit
	return cfg
}

// BoardConfig returns the preset for a board. Unknown boards fall back to
// the main board rules.
func BoardConfig(board types.Board) types.CostConfig {
	switch board {
	case types.BoardSTAR:
		return STARBoardConfig()
	case types.BoardChiNext:
		return ChiNextBoardConfig()
	default:
		return MainBoardConfig()
	}
}

// Option overrides one field of a board preset.
type Option func(*types.CostConfig)

// WithCommissionRate overrides the commission rate.
func WithCommissionRate(rate float64) Option {
	return func(c *types.CostConfig) { c.CommissionRate = rate }
}

// WithStampDutyRate overrides the sell-side stamp duty rate.
func WithStampDutyRate(rate float64) Option {
	return func(c *types.CostConfig) { c.StampDutyRate = rate }
}

// WithTransferFeeRate overrides the transfer fee rate.
func WithTransferFeeRate(rate float64) Option {
	return func(c *types.CostConfig) { c.TransferFeeRate = rate }
}

// WithSlippageRate overrides the slippage rate.
func WithSlippageRate(rate float64) Option {
	return func(c *types.CostConfig) { c.SlippageRate = rate }
}

// WithMinCommission overrides the minimum commission.
func WithMinCommission(min float64) Option {
	return func(c *types.CostConfig) { c.MinCommission = min }
}

// WithLotSize overrides the round-lot size.
func WithLotSize(size int) Option {
	return func(c *types.CostConfig) { c.LotSize = size }
}

// WithPriceLimit overrides the daily price-limit fraction.
func WithPriceLimit(limit float64) Option {
	return func(c *types.CostConfig) { c.PriceLimit = limit }
}

// NewCostConfig builds a custom fee schedule by merging overrides into the
// board preset.
func NewCostConfig(board types.Board, opts ...Option) types.CostConfig {
	cfg := BoardConfig(board)
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
