package telegram

import (
	"strings"
	"testing"
	"time"

	"SignalPull/internal/domain/models"
)

func sampleSignal() *models.CombinedSignal {
	return &models.CombinedSignal{
		Ticker:     "LMT",
		Direction:  models.DirectionLong,
		SignalType: models.SignalTypeCombined,
		Confidence: models.StrengthHigh,
		Score:      180,
		Reasons: []string{
			"Insider buying: $1.5M by 2 insider(s)",
			"Defense contracts: $60M from Department of Defense",
			"COMBINED: Insider activity + Government contracts",
		},
		InsiderData: &models.InsiderSummary{
			NetDirection: models.DirectionBuy,
			TotalValue:   1_500_000,
			InsiderCount: 2,
		},
		ContractData: &models.ContractSummary{
			TotalValue:    60_000_000,
			ContractCount: 3,
			PrimaryAgency: "Department of Defense",
			Sector:        "Defense",
		},
		SuggestedEntry: &models.SuggestedEntry{StrikeOffset: 0.05, DTE: 45, StopPercent: 0.10},
		GeneratedAt:    time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC),
	}
}

func TestFormatSignalWithOptions(t *testing.T) {
	metrics := &models.OptionMetrics{
		Delta: 0.42, Gamma: 0.012, Theta: -0.08, Vega: 0.31,
		Premium: 12.50, ProbabilityOfProfit: 38, ProbabilityOf2x: 19,
	}
	setup := &models.SetupScore{Score: 7, MaxScore: 8, Label: "Strong Setup"}

	msg := FormatSignal(sampleSignal(), 470.25, 495, metrics, setup)

	for _, want := range []string{
		"*SIGNAL ALERT: LMT LONG*",
		"COMBINED | HIGH Confidence | Score 180",
		"Insiders: 2 | Net BUY | $1.5M",
		"Contracts: 3 | Department of Defense | $60M",
		"*Price:* $470.25",
		"*Strike:* $495",
		"*DTE:* 45 | Premium: $12.50",
		"Delta 0.420",
		"*POP:* 38% | 2x: 19%",
		"*Setup Score:* Strong Setup (7/8)",
		"• Insider buying: $1.5M by 2 insider(s)",
		"_SignalPull Trading Intel_",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestFormatSignalWithoutOptions(t *testing.T) {
	s := sampleSignal()
	msg := FormatSignal(s, 470.25, 0, nil, nil)

	if strings.Contains(msg, "Strike") || strings.Contains(msg, "Greeks") {
		t.Fatalf("options block must be absent without metrics:\n%s", msg)
	}
	if !strings.Contains(msg, "*Reasons:*") {
		t.Fatalf("reasons block expected:\n%s", msg)
	}
}

func TestFormatAlertEmoji(t *testing.T) {
	at := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	msg := FormatAlert("TSLA", "danger", "Stop loss hit at $182.40", at)
	if !strings.HasPrefix(msg, "🚨 *TSLA ALERT*") {
		t.Fatalf("danger alerts use the siren emoji:\n%s", msg)
	}

	msg = FormatAlert("TSLA", "other", "note", at)
	if !strings.HasPrefix(msg, "📊") {
		t.Fatalf("unknown kinds fall back to the chart emoji:\n%s", msg)
	}
}
