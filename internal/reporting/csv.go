package reporting

import (
	"fmt"
	"strings"
)

// RenderSummaryCSV renders one summary row per run as CSV string.
func RenderSummaryCSV(runs []RunSection) string {
	var sb strings.Builder

	// Header
	sb.WriteString("strategy,kind,initial_capital,final_capital,total_trades,winning_trades,losing_trades,")
	sb.WriteString("win_rate,total_profit_loss,total_return_pct,avg_win,avg_loss,")
	sb.WriteString("profit_factor,max_drawdown_pct,sharpe_ratio\n")

	// Rows
	for _, run := range runs {
		s := run.Summary
		sb.WriteString(fmt.Sprintf("%s,%s,%s,%s,%d,%d,%d,%.4f,%s,%.4f,%s,%s,%.4f,%.4f,%.4f\n",
			run.StrategyName,
			run.Kind,
			run.InitialCapital.StringFixed(2),
			run.FinalCapital.StringFixed(2),
			s.TotalTrades,
			s.WinningTrades,
			s.LosingTrades,
			s.WinRate,
			s.TotalProfitLoss.StringFixed(2),
			s.TotalReturnPct,
			s.AvgWin.StringFixed(2),
			s.AvgLoss.StringFixed(2),
			s.ProfitFactor,
			s.MaxDrawdownPct,
			s.SharpeRatio,
		))
	}

	return sb.String()
}

// RenderTradesCSV renders the trade log of a single run as CSV string. The
// column set differs between equity and options runs, so mixed runs get one
// file each rather than a shared schema with empty columns.
func RenderTradesCSV(run RunSection) string {
	var sb strings.Builder

	switch run.Kind {
	case RunOptions:
		sb.WriteString("id,entry_date,exit_date,type,direction,strike,contracts,entry_premium,exit_premium,status,profit_loss\n")
		for _, t := range run.OptionTrades {
			sb.WriteString(fmt.Sprintf("%s,%s,%s,%s,%s,%s,%d,%s,%s,%s,%s\n",
				t.ID,
				t.EntryDate.Format(dateLayout),
				t.ExitDate.Format(dateLayout),
				t.Type,
				t.Direction,
				t.Strike.StringFixed(2),
				t.Contracts,
				t.EntryPremium.StringFixed(4),
				t.ExitPremium.StringFixed(4),
				t.Status,
				t.ProfitLoss.StringFixed(2),
			))
		}
	default:
		sb.WriteString("id,entry_date,exit_date,shares,entry_price,exit_price,profit_loss,return_pct\n")
		for _, t := range run.EquityTrades {
			sb.WriteString(fmt.Sprintf("%s,%s,%s,%d,%s,%s,%s,%s\n",
				t.ID,
				t.EntryDate.Format(dateLayout),
				t.ExitDate.Format(dateLayout),
				t.Shares,
				t.EntryPrice.StringFixed(2),
				t.ExitPrice.StringFixed(2),
				t.ProfitLoss.StringFixed(2),
				t.ReturnPct.StringFixed(2),
			))
		}
	}

	return sb.String()
}
