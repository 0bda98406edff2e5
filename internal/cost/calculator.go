package cost

import (
	"github.com/qtlab/astock-backtest/pkg/money"
	"github.com/qtlab/astock-backtest/pkg/types"
)

// Breakdown is the cost of one trade side. All components are exact
// amounts; TotalCost is always the sum of the four components and
// StampDuty is zero on the buy side.
type Breakdown struct {
	Commission  money.Amount `json:"commission"`
	StampDuty   money.Amount `json:"stamp_duty"`
	TransferFee money.Amount `json:"transfer_fee"`
	Slippage    money.Amount `json:"slippage"`
	TotalCost   money.Amount `json:"total_cost"`
	CostRate    money.Amount `json:"cost_rate"`
}

// RoundTrip is the combined economics of a buy+sell pair.
type RoundTrip struct {
	BuyValue      money.Amount `json:"buy_value"`
	SellValue     money.Amount `json:"sell_value"`
	Buy           Breakdown    `json:"buy"`
	Sell          Breakdown    `json:"sell"`
	TotalCost     money.Amount `json:"total_cost"`
	GrossReturn   money.Amount `json:"gross_return"`
	NetReturn     money.Amount `json:"net_return"`
	TotalCostRate money.Amount `json:"total_cost_rate"`
}

// Calculator computes transaction costs under one fee schedule. It holds no
// mutable state and is safe for concurrent use.
type Calculator struct {
	cfg types.CostConfig
}

// NewCalculator creates a calculator bound to a fee schedule.
func NewCalculator(cfg types.CostConfig) *Calculator {
	return &Calculator{cfg: cfg}
}

// Config returns the fee schedule the calculator was built with.
func (c *Calculator) Config() types.CostConfig {
	return c.cfg
}

// TradeCost computes the cost breakdown for one side of a trade.
// The commission floor applies even at zero trade value; the cost rate is
// zero when the trade value is zero.
func (c *Calculator) TradeCost(tradeValue float64, side types.Side) (Breakdown, error) {
	if tradeValue < 0 {
		return Breakdown{}, types.NewCalculationError(types.CodeInvalidInput,
			"trade value must not be negative",
			"supply the absolute trade value; direction is carried by side")
	}

	value := money.New(tradeValue)

	commission := money.Max(value.MulFloat(c.cfg.CommissionRate), money.New(c.cfg.MinCommission))

	stampDuty := money.Zero()
	if side == types.SideSell {
		stampDuty = value.MulFloat(c.cfg.StampDutyRate)
	}

	transferFee := value.MulFloat(c.cfg.TransferFeeRate)
	slippage := value.MulFloat(c.cfg.SlippageRate)

	total := commission.Add(stampDuty).Add(transferFee).Add(slippage)

	return Breakdown{
		Commission:  commission,
		StampDuty:   stampDuty,
		TransferFee: transferFee,
		Slippage:    slippage,
		TotalCost:   total,
		CostRate:    total.SafeDiv(value, money.Zero()),
	}, nil
}

// RoundTripCost composes both sides of a buy+sell pair into round-trip
// economics: gross return, total cost and net return.
func (c *Calculator) RoundTripCost(entryPrice, exitPrice float64, shares int) (RoundTrip, error) {
	if entryPrice <= 0 || exitPrice <= 0 {
		return RoundTrip{}, types.NewCalculationError(types.CodeInvalidInput,
			"entry and exit prices must be positive",
			"check the bar data feeding the simulation")
	}
	if shares <= 0 {
		return RoundTrip{}, types.NewCalculationError(types.CodeInvalidInput,
			"shares must be positive",
			"round the target amount to lots before costing")
	}

	buyValue := money.New(entryPrice).MulFloat(float64(shares))
	sellValue := money.New(exitPrice).MulFloat(float64(shares))

	buy, err := c.TradeCost(buyValue.Float64(), types.SideBuy)
	if err != nil {
		return RoundTrip{}, err
	}
	sell, err := c.TradeCost(sellValue.Float64(), types.SideSell)
	if err != nil {
		return RoundTrip{}, err
	}

	totalCost := buy.TotalCost.Add(sell.TotalCost)
	gross := sellValue.Sub(buyValue)

	return RoundTrip{
		BuyValue:      buyValue,
		SellValue:     sellValue,
		Buy:           buy,
		Sell:          sell,
		TotalCost:     totalCost,
		GrossReturn:   gross,
		NetReturn:     gross.Sub(totalCost),
		TotalCostRate: totalCost.SafeDiv(buyValue, money.Zero()),
	}, nil
}

// EstimateEffectivePrice models market impact as a price adjustment for
// execution simulation: buys fill above the quoted price, sells below.
// Distinct from the slippage line in TradeCost, which models the same
// friction as a cost estimate.
func EstimateEffectivePrice(price float64, side types.Side, slippageRate float64) float64 {
	p := money.New(price)
	if side == types.SideBuy {
		return p.MulFloat(1 + slippageRate).Float64()
	}
	return p.MulFloat(1 - slippageRate).Float64()
}

// BreakEvenPrice solves for the exit price at which the net return of the
// round trip is exactly zero. For a long entry (side buy) it returns the
// higher sell price that recoups both-side costs; for a short entry (side
// sell) it returns the lower buy-back price.
func (c *Calculator) BreakEvenPrice(entryPrice float64, shares int, side types.Side) (float64, error) {
	if entryPrice <= 0 {
		return 0, types.NewCalculationError(types.CodeInvalidInput,
			"entry price must be positive", "supply a positive entry price")
	}
	if shares <= 0 {
		return 0, types.NewCalculationError(types.CodeInvalidInput,
			"shares must be positive", "round the target amount to lots first")
	}

	sharesAmt := money.New(float64(shares))

	if side == types.SideBuy {
		return c.longBreakEven(entryPrice, sharesAmt)
	}
	return c.shortBreakEven(entryPrice, sharesAmt)
}

// longBreakEven isolates the sell-side cost-rate term:
//
//	X*S - P*S - buyCost - X*S*(c+d+t+s) = 0
//	X = (P*S + buyCost) / (S * (1 - c - d - t - s))
//
// When the solved exit value would put commission under the floor, the
// commission term is re-solved as the fixed minimum instead.
func (c *Calculator) longBreakEven(entryPrice float64, shares money.Amount) (float64, error) {
	buyValue := money.New(entryPrice).Mul(shares)
	buy, err := c.TradeCost(buyValue.Float64(), types.SideBuy)
	if err != nil {
		return 0, err
	}

	sellRate := c.cfg.CommissionRate + c.cfg.StampDutyRate + c.cfg.TransferFeeRate + c.cfg.SlippageRate
	if sellRate >= 1 {
		return 0, types.NewCalculationError(types.CodeInvalidInput,
			"sell-side cost rates sum to 100% or more",
			"check the cost configuration rates")
	}

	target := buyValue.Add(buy.TotalCost)
	denom := shares.MulFloat(1 - sellRate)
	price, err := target.Div(denom)
	if err != nil {
		return 0, err
	}

	// Commission floor regime: re-solve with a fixed commission term.
	if price.Mul(shares).MulFloat(c.cfg.CommissionRate).LessThan(money.New(c.cfg.MinCommission)) {
		flatRate := c.cfg.StampDutyRate + c.cfg.TransferFeeRate + c.cfg.SlippageRate
		target = target.Add(money.New(c.cfg.MinCommission))
		price, err = target.Div(shares.MulFloat(1 - flatRate))
		if err != nil {
			return 0, err
		}
	}

	return price.Float64(), nil
}

// shortBreakEven solves for the lower buy-back price of a sell entry:
//
//	P*S - sellCost - X*S - X*S*(c+t+s) = 0
//	X = (P*S - sellCost) / (S * (1 + c + t + s))
func (c *Calculator) shortBreakEven(entryPrice float64, shares money.Amount) (float64, error) {
	sellValue := money.New(entryPrice).Mul(shares)
	sell, err := c.TradeCost(sellValue.Float64(), types.SideSell)
	if err != nil {
		return 0, err
	}

	proceeds := sellValue.Sub(sell.TotalCost)
	if !proceeds.IsPositive() {
		return 0, types.NewCalculationError(types.CodeInvalidInput,
			"entry costs exceed sale proceeds",
			"increase the position value or reduce cost rates")
	}

	buyRate := c.cfg.CommissionRate + c.cfg.TransferFeeRate + c.cfg.SlippageRate
	price, err := proceeds.Div(shares.MulFloat(1 + buyRate))
	if err != nil {
		return 0, err
	}

	if price.Mul(shares).MulFloat(c.cfg.CommissionRate).LessThan(money.New(c.cfg.MinCommission)) {
		flatRate := c.cfg.TransferFeeRate + c.cfg.SlippageRate
		proceeds = proceeds.Sub(money.New(c.cfg.MinCommission))
		if !proceeds.IsPositive() {
			return 0, types.NewCalculationError(types.CodeInvalidInput,
				"entry costs exceed sale proceeds",
				"increase the position value or reduce cost rates")
		}
		price, err = proceeds.Div(shares.MulFloat(1 + flatRate))
		if err != nil {
			return 0, err
		}
	}

	return price.Float64(), nil
}
