package reporting

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// RenderMarkdown renders report as Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	// Header
	sb.WriteString(fmt.Sprintf("# Backtest Report: %s\n\n", r.Symbol))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Period: %s to %s (%d bars) | Runs: %d\n\n",
		r.PeriodStart.Format(dateLayout), r.PeriodEnd.Format(dateLayout),
		r.BarCount, len(r.Runs)))

	// Run Summary
	sb.WriteString("## Run Summary\n\n")
	sb.WriteString("| Strategy | Kind | Initial | Final | P/L | Return | Trades | WinRate | ProfitFactor | MaxDD | Sharpe |\n")
	sb.WriteString("|----------|------|---------|-------|-----|--------|--------|---------|--------------|-------|--------|\n")
	for _, run := range r.Runs {
		s := run.Summary
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %.2f%% | %d | %.2f%% | %.2f | %.2f%% | %.2f |\n",
			run.StrategyName, run.Kind,
			run.InitialCapital.StringFixed(2), run.FinalCapital.StringFixed(2),
			s.TotalProfitLoss.StringFixed(2), s.TotalReturnPct,
			s.TotalTrades, s.WinRate, s.ProfitFactor, s.MaxDrawdownPct, s.SharpeRatio))
	}
	sb.WriteString("\n")

	// Per-run detail
	for _, run := range r.Runs {
		sb.WriteString(fmt.Sprintf("## %s\n\n", run.StrategyName))
		writeRunDetail(&sb, run)
	}

	return sb.String()
}

func writeRunDetail(sb *strings.Builder, run RunSection) {
	s := run.Summary

	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Total Trades | %d |\n", s.TotalTrades))
	sb.WriteString(fmt.Sprintf("| Winning / Losing | %d / %d |\n", s.WinningTrades, s.LosingTrades))
	sb.WriteString(fmt.Sprintf("| Win Rate | %.2f%% |\n", s.WinRate))
	sb.WriteString(fmt.Sprintf("| Total P/L | %s |\n", s.TotalProfitLoss.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("| Total Return | %.2f%% |\n", s.TotalReturnPct))
	sb.WriteString(fmt.Sprintf("| Avg Win / Avg Loss | %s / %s |\n", s.AvgWin.StringFixed(2), s.AvgLoss.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("| Profit Factor | %.2f |\n", s.ProfitFactor))
	sb.WriteString(fmt.Sprintf("| Max Drawdown | %.2f%% |\n", s.MaxDrawdownPct))
	sb.WriteString(fmt.Sprintf("| Sharpe Ratio | %.2f |\n", s.SharpeRatio))
	if run.Kind == RunEquity && !run.BuyHoldFinal.IsZero() {
		sb.WriteString(fmt.Sprintf("| Buy & Hold Final | %s |\n", run.BuyHoldFinal.StringFixed(2)))
	}
	sb.WriteString("\n")

	switch run.Kind {
	case RunEquity:
		writeEquityTrades(sb, run)
	case RunOptions:
		writeOptionTrades(sb, run)
	}
}

func writeEquityTrades(sb *strings.Builder, run RunSection) {
	sb.WriteString("### Trades\n\n")
	if len(run.EquityTrades) == 0 {
		sb.WriteString("No trades executed.\n\n")
		return
	}
	sb.WriteString("| Entry | Exit | Shares | Entry Price | Exit Price | P/L | Return |\n")
	sb.WriteString("|-------|------|--------|-------------|------------|-----|--------|\n")
	for _, t := range run.EquityTrades {
		sb.WriteString(fmt.Sprintf("| %s | %s | %d | %s | %s | %s | %s%% |\n",
			t.EntryDate.Format(dateLayout), t.ExitDate.Format(dateLayout),
			t.Shares, t.EntryPrice.StringFixed(2), t.ExitPrice.StringFixed(2),
			t.ProfitLoss.StringFixed(2), t.ReturnPct.StringFixed(2)))
	}
	sb.WriteString("\n")
}

func writeOptionTrades(sb *strings.Builder, run RunSection) {
	sb.WriteString("### Trades\n\n")
	if len(run.OptionTrades) == 0 {
		sb.WriteString("No trades executed.\n\n")
		return
	}
	sb.WriteString("| Entry | Exit | Type | Direction | Strike | Contracts | Entry Prem | Exit Prem | Status | P/L |\n")
	sb.WriteString("|-------|------|------|-----------|--------|-----------|------------|-----------|--------|-----|\n")
	for _, t := range run.OptionTrades {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %d | %s | %s | %s | %s |\n",
			t.EntryDate.Format(dateLayout), t.ExitDate.Format(dateLayout),
			t.Type, t.Direction, t.Strike.StringFixed(2), t.Contracts,
			t.EntryPremium.StringFixed(4), t.ExitPremium.StringFixed(4),
			t.Status, t.ProfitLoss.StringFixed(2)))
	}
	sb.WriteString("\n")
}
