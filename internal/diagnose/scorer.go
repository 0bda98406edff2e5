package diagnose

import (
	"fmt"

	"github.com/qtlab/astock-backtest/internal/metrics"
	"github.com/qtlab/astock-backtest/pkg/types"
)

// Thresholds is the rubric the scorer compares metrics against. All
// percent-valued fields are percentages.
type Thresholds struct {
	SevereDrawdown   float64 // error above this
	HighDrawdown     float64 // warning above this
	LowSharpe        float64 // warning below this
	GoodSharpe       float64 // highlight above this
	HighVolatility   float64 // warning above this
	StrongReturn     float64 // highlight above this annualized
	LowWinRate       float64 // warning below this
	HighWinRate      float64 // highlight above this
	GoodProfitFactor float64 // highlight above this
	Overtrading      float64 // warning above this many trades per month
	LongLossStreak   int     // warning at or above this
	RatioCeiling     float64 // ratios are clamped here before scoring
}

// Score penalties per issue severity; the score starts at 100 and is
// floored at 0.
const (
	penaltyError   = 20
	penaltyWarning = 10
	penaltyInfo    = 3
)

// DefaultThresholds returns the standard rubric.
func DefaultThresholds() Thresholds {
	return Thresholds{
		SevereDrawdown:   30,
		HighDrawdown:     20,
		LowSharpe:        0.5,
		GoodSharpe:       1.5,
		HighVolatility:   40,
		StrongReturn:     20,
		LowWinRate:       35,
		HighWinRate:      60,
		GoodProfitFactor: 2,
		Overtrading:      40,
		LongLossStreak:   8,
		RatioCeiling:     metrics.DefaultRatioCeiling,
	}
}

// Scorer applies a rule-based rubric over the three metrics groups. It is
// deterministic: the same metrics always produce the same report.
type Scorer struct {
	thresholds Thresholds
}

// NewScorer creates a scorer with the given rubric.
func NewScorer(thresholds Thresholds) *Scorer {
	return &Scorer{thresholds: thresholds}
}

// NewDefaultScorer creates a scorer with the standard rubric.
func NewDefaultScorer() *Scorer {
	return NewScorer(DefaultThresholds())
}

// Run produces the diagnostic report for one backtest.
func (s *Scorer) Run(returnM types.ReturnMetrics, riskM types.RiskMetrics, tradingM types.TradingMetrics) *types.DiagnosticReport {
	report := &types.DiagnosticReport{
		Issues:     []types.Issue{},
		Highlights: []types.Highlight{},
	}

	s.scoreRisk(riskM, report)
	s.scoreReturns(returnM, report)
	s.scoreTrading(tradingM, report)

	score := 100
	for _, issue := range report.Issues {
		switch issue.Severity {
		case types.SeverityError:
			score -= penaltyError
		case types.SeverityWarning:
			score -= penaltyWarning
		case types.SeverityInfo:
			score -= penaltyInfo
		}
	}
	if score < 0 {
		score = 0
	}
	report.OverallScore = score
	report.RiskLevel = s.riskLevel(riskM)

	return report
}

func (s *Scorer) scoreRisk(m types.RiskMetrics, report *types.DiagnosticReport) {
	sharpe := s.clamp(m.SharpeRatio)

	switch {
	case m.MaxDrawdown > s.thresholds.SevereDrawdown:
		report.Issues = append(report.Issues, types.Issue{
			ID:         "max_drawdown_severe",
			Severity:   types.SeverityError,
			Message:    fmt.Sprintf("maximum drawdown %.1f%% exceeds %.0f%%", m.MaxDrawdown, s.thresholds.SevereDrawdown),
			Value:      m.MaxDrawdown,
			Suggestion: "reduce position sizes or tighten stop losses",
			RelatedParams: []string{"position_size", "stop_loss", "max_positions"},
		})
	case m.MaxDrawdown > s.thresholds.HighDrawdown:
		report.Issues = append(report.Issues, types.Issue{
			ID:         "max_drawdown_high",
			Severity:   types.SeverityWarning,
			Message:    fmt.Sprintf("maximum drawdown %.1f%% exceeds %.0f%%", m.MaxDrawdown, s.thresholds.HighDrawdown),
			Value:      m.MaxDrawdown,
			Suggestion: "consider a drawdown stop or smaller positions",
			RelatedParams: []string{"position_size", "max_drawdown"},
		})
	}

	switch {
	case sharpe < 0:
		report.Issues = append(report.Issues, types.Issue{
			ID:         "sharpe_negative",
			Severity:   types.SeverityError,
			Message:    fmt.Sprintf("Sharpe ratio %.2f is negative", sharpe),
			Value:      sharpe,
			Suggestion: "the strategy underperforms the risk-free rate; revisit entry rules",
			RelatedParams: []string{"entry_rules", "holding_period"},
		})
	case sharpe < s.thresholds.LowSharpe:
		report.Issues = append(report.Issues, types.Issue{
			ID:         "sharpe_low",
			Severity:   types.SeverityWarning,
			Message:    fmt.Sprintf("Sharpe ratio %.2f is below %.2f", sharpe, s.thresholds.LowSharpe),
			Value:      sharpe,
			Suggestion: "returns do not justify the volatility taken",
			RelatedParams: []string{"entry_rules", "position_size"},
		})
	case sharpe > s.thresholds.GoodSharpe:
		report.Highlights = append(report.Highlights, types.Highlight{
			ID:      "sharpe_strong",
			Message: fmt.Sprintf("Sharpe ratio %.2f indicates strong risk-adjusted returns", sharpe),
			Value:   sharpe,
		})
	}
}

func (s *Scorer) scoreReturns(m types.ReturnMetrics, report *types.DiagnosticReport) {
	if m.AnnualizedReturn < 0 {
		report.Issues = append(report.Issues, types.Issue{
			ID:         "annualized_return_negative",
			Severity:   types.SeverityWarning,
			Message:    fmt.Sprintf("annualized return %.1f%% is negative", m.AnnualizedReturn),
			Value:      m.AnnualizedReturn,
			Suggestion: "the strategy loses money over the test window",
			RelatedParams: []string{"entry_rules", "exit_rules"},
		})
	} else if m.AnnualizedReturn > s.thresholds.StrongReturn {
		report.Highlights = append(report.Highlights, types.Highlight{
			ID:      "annualized_return_strong",
			Message: fmt.Sprintf("annualized return %.1f%% exceeds %.0f%%", m.AnnualizedReturn, s.thresholds.StrongReturn),
			Value:   m.AnnualizedReturn,
		})
	}

	if m.Volatility > s.thresholds.HighVolatility {
		report.Issues = append(report.Issues, types.Issue{
			ID:         "volatility_high",
			Severity:   types.SeverityWarning,
			Message:    fmt.Sprintf("annualized volatility %.1f%% exceeds %.0f%%", m.Volatility, s.thresholds.HighVolatility),
			Value:      m.Volatility,
			Suggestion: "diversify holdings or reduce single-position weight",
			RelatedParams: []string{"max_positions", "position_size"},
		})
	}
}

func (s *Scorer) scoreTrading(m types.TradingMetrics, report *types.DiagnosticReport) {
	if m.TotalTrades == 0 {
		// Informational outcome, not a failure: the window produced no
		// completed round trips.
		report.Issues = append(report.Issues, types.Issue{
			ID:         "no_trades",
			Severity:   types.SeverityInfo,
			Message:    "no completed trades in the test window",
			Value:      0,
			Suggestion: "widen the date range or loosen entry conditions",
			RelatedParams: []string{"start_date", "end_date", "entry_rules"},
		})
		return
	}

	profitFactor := s.clamp(m.ProfitFactor)

	switch {
	case m.WinRate < s.thresholds.LowWinRate:
		report.Issues = append(report.Issues, types.Issue{
			ID:         "win_rate_low",
			Severity:   types.SeverityWarning,
			Message:    fmt.Sprintf("win rate %.1f%% is below %.0f%%", m.WinRate, s.thresholds.LowWinRate),
			Value:      m.WinRate,
			Suggestion: "losing trades dominate; review exit timing",
			RelatedParams: []string{"exit_rules", "stop_loss"},
		})
	case m.WinRate > s.thresholds.HighWinRate:
		report.Highlights = append(report.Highlights, types.Highlight{
			ID:      "win_rate_high",
			Message: fmt.Sprintf("win rate %.1f%% exceeds %.0f%%", m.WinRate, s.thresholds.HighWinRate),
			Value:   m.WinRate,
		})
	}

	if profitFactor < 1 {
		report.Issues = append(report.Issues, types.Issue{
			ID:         "profit_factor_below_one",
			Severity:   types.SeverityError,
			Message:    fmt.Sprintf("profit factor %.2f: gross losses exceed gross wins", profitFactor),
			Value:      profitFactor,
			Suggestion: "cut losers earlier or let winners run longer",
			RelatedParams: []string{"stop_loss", "take_profit"},
		})
	} else if profitFactor > s.thresholds.GoodProfitFactor {
		report.Highlights = append(report.Highlights, types.Highlight{
			ID:      "profit_factor_strong",
			Message: fmt.Sprintf("profit factor %.2f exceeds %.1f", profitFactor, s.thresholds.GoodProfitFactor),
			Value:   profitFactor,
		})
	}

	if m.TradingFrequency > s.thresholds.Overtrading {
		report.Issues = append(report.Issues, types.Issue{
			ID:         "overtrading",
			Severity:   types.SeverityWarning,
			Message:    fmt.Sprintf("%.1f trades per month; transaction costs compound quickly", m.TradingFrequency),
			Value:      m.TradingFrequency,
			Suggestion: "raise signal thresholds or lengthen holding periods",
			RelatedParams: []string{"holding_period", "commission_rate", "slippage_rate"},
		})
	}

	if m.MaxLossStreak >= s.thresholds.LongLossStreak {
		report.Issues = append(report.Issues, types.Issue{
			ID:         "long_loss_streak",
			Severity:   types.SeverityWarning,
			Message:    fmt.Sprintf("%d consecutive losing trades", m.MaxLossStreak),
			Value:      float64(m.MaxLossStreak),
			Suggestion: "add a circuit breaker after repeated losses",
			RelatedParams: []string{"daily_loss_limit"},
		})
	}
}

func (s *Scorer) riskLevel(m types.RiskMetrics) types.RiskLevel {
	sharpe := s.clamp(m.SharpeRatio)
	switch {
	case m.MaxDrawdown > 25 || sharpe < 0:
		return types.RiskLevelHigh
	case m.MaxDrawdown < 10 && sharpe > 1:
		return types.RiskLevelLow
	default:
		return types.RiskLevelMedium
	}
}

// clamp bounds a ratio at the rubric ceiling. Upstream builders already cap
// their outputs; clamping again keeps the rubric finite even for metrics
// computed elsewhere.
func (s *Scorer) clamp(ratio float64) float64 {
	if ratio > s.thresholds.RatioCeiling {
		return s.thresholds.RatioCeiling
	}
	return ratio
}
