package telegram

import (
	"fmt"
	"strings"
	"time"

	"SignalPull/internal/domain/models"
)

const footer = "---\n_SignalPull Trading Intel_"

// FormatSignal renders a combined signal as a Markdown alert. Options
// lines appear only when the caller priced a contract for the signal.
func FormatSignal(s *models.CombinedSignal, price float64, strike float64, metrics *models.OptionMetrics, setup *models.SetupScore) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*SIGNAL ALERT: %s %s*\n\n", s.Ticker, s.Direction)
	fmt.Fprintf(&b, "*%s | %s Confidence | Score %d*\n", s.SignalType, s.Confidence, s.Score)

	if s.InsiderData != nil {
		fmt.Fprintf(&b, "Insiders: %d | Net %s | $%.1fM\n",
			s.InsiderData.InsiderCount, s.InsiderData.NetDirection, s.InsiderData.TotalValue/1_000_000)
	}
	if s.ContractData != nil {
		fmt.Fprintf(&b, "Contracts: %d | %s | $%.0fM\n",
			s.ContractData.ContractCount, s.ContractData.PrimaryAgency, s.ContractData.TotalValue/1_000_000)
	}

	if price > 0 {
		fmt.Fprintf(&b, "\n*Price:* $%.2f\n", price)
	}

	if s.SuggestedEntry != nil && strike > 0 && metrics != nil {
		otmPercent := (strike - price) / price * 100
		fmt.Fprintf(&b, "*Strike:* $%.0f (%.1f%% OTM)\n", strike, otmPercent)
		fmt.Fprintf(&b, "*DTE:* %d | Premium: $%.2f\n", s.SuggestedEntry.DTE, metrics.Premium)
		fmt.Fprintf(&b, "\n*Greeks:* Delta %.3f | Gamma %.3f | Theta %.3f/d | Vega %.3f\n",
			metrics.Delta, metrics.Gamma, metrics.Theta, metrics.Vega)
		fmt.Fprintf(&b, "*POP:* %d%% | 2x: %d%%\n", metrics.ProbabilityOfProfit, metrics.ProbabilityOf2x)
		if setup != nil {
			fmt.Fprintf(&b, "*Setup Score:* %s (%d/%d)\n", setup.Label, setup.Score, setup.MaxScore)
		}
	}

	if len(s.Reasons) > 0 {
		b.WriteString("\n*Reasons:*\n")
		for _, r := range s.Reasons {
			fmt.Fprintf(&b, "• %s\n", r)
		}
	}

	b.WriteString("\n")
	b.WriteString(footer)
	return b.String()
}

// FormatAlert renders a free-form price/watch alert.
func FormatAlert(ticker, kind, message string, at time.Time) string {
	emoji := map[string]string{
		"success": "📈",
		"danger":  "🚨",
		"warning": "⚠️",
	}[kind]
	if emoji == "" {
		emoji = "📊"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s *%s ALERT*\n\n", emoji, ticker)
	fmt.Fprintf(&b, "%s\n\n", message)
	fmt.Fprintf(&b, "_%s_\n", at.UTC().Format(time.RFC1123))
	b.WriteString(footer)
	return b.String()
}
