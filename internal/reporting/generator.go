package reporting

import (
	"errors"
	"time"

	"equity-options-lab/internal/domain"
	"equity-options-lab/internal/metrics"
)

// Generator errors
var (
	ErrEmptySeries = errors.New("report requires a non-empty series")
	ErrNoRuns      = errors.New("report requires at least one run")
)

// Generator assembles backtest results into a report. It performs no
// simulation of its own; engines hand it finished results and it attaches
// the computed summaries.
type Generator struct {
	now func() time.Time // Injectable clock for deterministic output
}

// NewGenerator creates a new report generator.
func NewGenerator() *Generator {
	return &Generator{
		now: func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate produces a report for the given runs over one symbol's series.
// Results may mix equity and options runs; section order follows input
// order with equity results first.
func (g *Generator) Generate(
	symbol string,
	series *domain.Series,
	equityResults []*domain.BacktestResult,
	optionsResults []*domain.OptionsBacktestResult,
) (*Report, error) {
	if series == nil || series.Len() == 0 {
		return nil, ErrEmptySeries
	}
	if len(equityResults)+len(optionsResults) == 0 {
		return nil, ErrNoRuns
	}

	report := &Report{
		GeneratedAt: g.now(),
		Symbol:      symbol,
		PeriodStart: series.Date(0),
		PeriodEnd:   series.Date(series.Len() - 1),
		BarCount:    series.Len(),
	}

	for _, r := range equityResults {
		report.Runs = append(report.Runs, RunSection{
			StrategyName:   r.StrategyName,
			Kind:           RunEquity,
			InitialCapital: r.InitialCapital,
			FinalCapital:   r.FinalCapital,
			BuyHoldFinal:   r.BuyHoldFinal,
			Summary:        metrics.Compute(r),
			EquityTrades:   r.Trades,
		})
	}
	for _, r := range optionsResults {
		report.Runs = append(report.Runs, RunSection{
			StrategyName:   r.StrategyName,
			Kind:           RunOptions,
			InitialCapital: r.InitialCapital,
			FinalCapital:   r.FinalCapital,
			Summary:        metrics.ComputeOptions(r),
			OptionTrades:   r.Trades,
		})
	}

	return report, nil
}
