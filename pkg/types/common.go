package types

import "time"

// Trade sides
const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// Side is the direction of one trade leg.
type Side string

// Board identifies an exchange board with its own fee and limit rules.
type Board string

// Tradable boards
const (
	BoardMain    Board = "main"    // Shanghai/Shenzhen main board
	BoardSTAR    Board = "star"    // STAR Market (科创板)
	BoardChiNext Board = "chinext" // ChiNext (创业板)
)

// CostConfig is one market's fee schedule. Rates are fractions
// (0.0003 == 0.03%). Configs are value objects; calculations never mutate
// them, so the same config can be shared across concurrent runs.
type CostConfig struct {
	Board           Board   `json:"board" mapstructure:"board"`
	CommissionRate  float64 `json:"commission_rate" mapstructure:"commission_rate"`
	StampDutyRate   float64 `json:"stamp_duty_rate" mapstructure:"stamp_duty_rate"` // sell side only
	TransferFeeRate float64 `json:"transfer_fee_rate" mapstructure:"transfer_fee_rate"`
	SlippageRate    float64 `json:"slippage_rate" mapstructure:"slippage_rate"`
	MinCommission   float64 `json:"min_commission" mapstructure:"min_commission"`
	LotSize         int     `json:"lot_size" mapstructure:"lot_size"`
	PriceLimit      float64 `json:"price_limit" mapstructure:"price_limit"` // daily band, fraction of prev close
}

// BacktestConfig is one backtest run request as supplied by the caller.
type BacktestConfig struct {
	StartDate      time.Time  `json:"start_date" mapstructure:"start_date"`
	EndDate        time.Time  `json:"end_date" mapstructure:"end_date"`
	InitialCapital float64    `json:"initial_capital" mapstructure:"initial_capital"`
	Symbols        []string   `json:"symbols" mapstructure:"symbols"`
	Board          Board      `json:"board" mapstructure:"board"`
	Cost           CostConfig `json:"cost" mapstructure:"cost"`
	RiskFreeRate   float64    `json:"risk_free_rate" mapstructure:"risk_free_rate"`
	OutputDir      string     `json:"output_dir" mapstructure:"output_dir"`
}

// EquityPoint is one time-series sample of portfolio value.
type EquityPoint struct {
	Date      time.Time `json:"date"`
	Equity    float64   `json:"equity"`
	Benchmark float64   `json:"benchmark,omitempty"`
	Cash      float64   `json:"cash,omitempty"`
	Position  float64   `json:"position,omitempty"`
}

// DetailedTrade is a completed or open trade. Completed trades have
// ExitPrice, ExitTime and the P&L fields populated.
type DetailedTrade struct {
	Symbol      string    `json:"symbol"`
	Side        Side      `json:"side"`
	EntryPrice  float64   `json:"entry_price"`
	ExitPrice   float64   `json:"exit_price,omitempty"`
	Shares      int       `json:"shares"`
	PnL         float64   `json:"pnl,omitempty"`
	PnLPercent  float64   `json:"pnl_percent,omitempty"`
	HoldingDays int       `json:"holding_days,omitempty"`
	EntryTime   time.Time `json:"entry_time"`
	ExitTime    time.Time `json:"exit_time,omitempty"`
	Completed   bool      `json:"completed"`
}

// MonthlyReturn is the return of one calendar month.
type MonthlyReturn struct {
	Month  string  `json:"month"` // YYYY-MM
	Return float64 `json:"return"`
}

// ReturnMetrics aggregates return statistics. Percent-valued fields
// (TotalReturn, AnnualizedReturn, Volatility, ...) are percentages, not
// fractions.
type ReturnMetrics struct {
	TotalReturn      float64         `json:"total_return"`
	AnnualizedReturn float64         `json:"annualized_return"`
	BenchmarkReturn  float64         `json:"benchmark_return,omitempty"`
	ExcessReturn     float64         `json:"excess_return,omitempty"`
	Volatility       float64         `json:"volatility"`
	MonthlyReturns   []MonthlyReturn `json:"monthly_returns,omitempty"`
	BestMonth        float64         `json:"best_month"`
	WorstMonth       float64         `json:"worst_month"`
	MonthlyWinRate   float64         `json:"monthly_win_rate"`
}

// DrawdownPeriod describes one peak-to-recovery episode.
type DrawdownPeriod struct {
	PeakDate     time.Time `json:"peak_date"`
	TroughDate   time.Time `json:"trough_date"`
	RecoveryDate time.Time `json:"recovery_date,omitempty"`
	Depth        float64   `json:"depth"` // percent decline from peak
	DurationDays int       `json:"duration_days"`
	RecoveryDays int       `json:"recovery_days,omitempty"`
	Recovered    bool      `json:"recovered"`
}

// RiskMetrics aggregates risk statistics. Ratios that would be unbounded
// under a zero denominator are capped (see the metrics package ceiling) so
// downstream scoring never compares against infinity.
type RiskMetrics struct {
	MaxDrawdown         float64          `json:"max_drawdown"` // percent
	MaxDrawdownDuration int              `json:"max_drawdown_duration"`
	CurrentDrawdown     float64          `json:"current_drawdown"`
	DrawdownPeriods     []DrawdownPeriod `json:"drawdown_periods,omitempty"`
	SharpeRatio         float64          `json:"sharpe_ratio"`
	SortinoRatio        float64          `json:"sortino_ratio"`
	CalmarRatio         float64          `json:"calmar_ratio"`
	VaR95               float64          `json:"var_95"`
	VaR99               float64          `json:"var_99"`
	CVaR95              float64          `json:"cvar_95"`
}

// TradingMetrics aggregates trade-level statistics. Only completed trades
// count.
type TradingMetrics struct {
	TotalTrades      int     `json:"total_trades"`
	WinningTrades    int     `json:"winning_trades"`
	LosingTrades     int     `json:"losing_trades"`
	WinRate          float64 `json:"win_rate"` // percent, 0..100
	ProfitFactor     float64 `json:"profit_factor"`
	AvgWin           float64 `json:"avg_win"`
	AvgLoss          float64 `json:"avg_loss"`
	BestTrade        float64 `json:"best_trade"`
	WorstTrade       float64 `json:"worst_trade"`
	MaxWinStreak     int     `json:"max_win_streak"`
	MaxLossStreak    int     `json:"max_loss_streak"`
	AvgHoldingDays   float64 `json:"avg_holding_days"`
	TradingFrequency float64 `json:"trading_frequency"` // trades per 21-day month
}

// IssueSeverity grades a diagnostic issue.
type IssueSeverity string

// Issue severities
const (
	SeverityError   IssueSeverity = "error"
	SeverityWarning IssueSeverity = "warning"
	SeverityInfo    IssueSeverity = "info"
)

// Issue is one flagged problem in a diagnostic report.
type Issue struct {
	ID            string        `json:"id"`
	Severity      IssueSeverity `json:"severity"`
	Message       string        `json:"message"`
	Value         float64       `json:"value"`
	Suggestion    string        `json:"suggestion"`
	RelatedParams []string      `json:"related_params,omitempty"`
}

// Highlight is one positive finding in a diagnostic report.
type Highlight struct {
	ID      string  `json:"id"`
	Message string  `json:"message"`
	Value   float64 `json:"value"`
}

// RiskLevel classifies overall strategy risk.
type RiskLevel string

// Risk levels
const (
	RiskLevelLow    RiskLevel = "low"
	RiskLevelMedium RiskLevel = "medium"
	RiskLevelHigh   RiskLevel = "high"
)

// DiagnosticReport is the scored assessment of one backtest. The score is a
// deterministic function of the three metrics groups only.
type DiagnosticReport struct {
	OverallScore int         `json:"overall_score"` // 0..100
	RiskLevel    RiskLevel   `json:"risk_level"`
	Issues       []Issue     `json:"issues"`
	Highlights   []Highlight `json:"highlights"`
}

// ValidationError names one offending field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult is the structured outcome of input validation. Expected
// input errors are reported here, never as panics.
type ValidationResult struct {
	IsValid bool              `json:"is_valid"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

// AddError appends a field error and marks the result invalid.
func (r *ValidationResult) AddError(field, message string) {
	r.IsValid = false
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: message})
}

// AnalysisResult is the complete output of one backtest analysis.
type AnalysisResult struct {
	StartDate       time.Time         `json:"start_date"`
	EndDate         time.Time         `json:"end_date"`
	TradingDays     int               `json:"trading_days"`
	ProfitDays      int               `json:"profit_days"`
	LossDays        int               `json:"loss_days"`
	InitialCapital  float64           `json:"initial_capital"`
	FinalCapital    float64           `json:"final_capital"`
	TotalCommission float64           `json:"total_commission"`
	TotalStampDuty  float64           `json:"total_stamp_duty"`
	TotalFees       float64           `json:"total_fees"`
	TotalTurnover   float64           `json:"total_turnover"`
	ReturnMetrics   ReturnMetrics     `json:"return_metrics"`
	RiskMetrics     RiskMetrics       `json:"risk_metrics"`
	TradingMetrics  TradingMetrics    `json:"trading_metrics"`
	Diagnostics     *DiagnosticReport `json:"diagnostics,omitempty"`
	EquityCurve     []EquityPoint     `json:"equity_curve,omitempty"`
	Trades          []DetailedTrade   `json:"trades,omitempty"`
}
