package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qtlab/astock-backtest/pkg/types"
)

func TestCalculateLots(t *testing.T) {
	res, err := CalculateLots(100000, 10.5, 100)
	require.NoError(t, err)

	// 100000 / 10.5 = 9523.8 shares -> 95 lots -> 9500 shares
	assert.Equal(t, 95, res.ActualLots)
	assert.Equal(t, 9500, res.ActualQuantity)
	assert.Equal(t, 100, res.LotSize)
}

func TestCalculateLots_STARLotSize(t *testing.T) {
	res, err := CalculateLots(50000, 20, 200)
	require.NoError(t, err)

	// 50000 / 20 = 2500 shares -> 12 lots of 200 -> 2400 shares
	assert.Equal(t, 12, res.ActualLots)
	assert.Equal(t, 2400, res.ActualQuantity)
}

func TestCalculateLots_AmountTooSmall(t *testing.T) {
	res, err := CalculateLots(500, 10, 100)
	require.NoError(t, err)
	assert.Equal(t, 0, res.ActualLots)
	assert.Equal(t, 0, res.ActualQuantity)
}

func TestCalculateLots_ZeroPrice(t *testing.T) {
	_, err := CalculateLots(100000, 0, 100)
	require.Error(t, err)
	assert.True(t, types.IsCode(err, types.CodeDivisionByZero))
}

func TestCalculateLots_BadLotSize(t *testing.T) {
	_, err := CalculateLots(100000, 10, 0)
	require.Error(t, err)
	assert.True(t, types.IsCode(err, types.CodeInvalidInput))
}

func TestIsLimitUp(t *testing.T) {
	assert.True(t, IsLimitUp(11, 10, 0.1))
	assert.False(t, IsLimitUp(10.9, 10, 0.1))

	// Within tolerance of the band still counts.
	assert.True(t, IsLimitUp(10.995, 10, 0.1))

	// 20% boards
	assert.True(t, IsLimitUp(12, 10, 0.2))
	assert.False(t, IsLimitUp(11.9, 10, 0.2))
}

func TestIsLimitDown(t *testing.T) {
	assert.True(t, IsLimitDown(9, 10, 0.1))
	assert.False(t, IsLimitDown(9.1, 10, 0.1))
	assert.True(t, IsLimitDown(9.005, 10, 0.1))
}

func TestLimitPrices(t *testing.T) {
	assert.Equal(t, 11.0, LimitUpPrice(10, 0.1))
	assert.Equal(t, 9.0, LimitDownPrice(10, 0.1))

	// Rounded to the 2-decimal tick: 12.34 * 1.1 = 13.574 -> 13.57
	assert.Equal(t, 13.57, LimitUpPrice(12.34, 0.1))
	assert.Equal(t, 11.11, LimitDownPrice(12.34, 0.1))
}

func TestLimitUpDetectionAgainstRoundedBand(t *testing.T) {
	prev := 12.34
	up := LimitUpPrice(prev, 0.1)
	assert.True(t, IsLimitUp(up, prev, 0.1))
	assert.False(t, IsLimitUp(up-0.1, prev, 0.1))
}
