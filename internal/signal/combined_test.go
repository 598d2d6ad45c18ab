package signal

import (
	"testing"
	"time"

	"SignalPull/internal/domain/models"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func insiderSummary(direction string, value float64, count int) *models.InsiderSummary {
	s := &models.InsiderSummary{
		NetDirection: direction,
		TotalValue:   value,
		InsiderCount: count,
		LatestDate:   "2025-06-10",
	}
	s.Score = ScoreInsiderSummary(s)
	return s
}

func contractSummary(sector string, value float64, count int) *models.ContractSummary {
	s := &models.ContractSummary{
		TotalValue:    value,
		ContractCount: count,
		PrimaryAgency: "Department of Defense",
		Sector:        sector,
	}
	s.Score = ScoreContractSummary(s)
	return s
}

func TestScoreInsiderSummaryTiers(t *testing.T) {
	cases := []struct {
		value     float64
		count     int
		direction string
		want      int
	}{
		{6_000_000, 3, models.DirectionBuy, 100},  // 40+30+30
		{1_500_000, 2, models.DirectionSell, 80},  // 30+20+30
		{600_000, 1, models.DirectionMixed, 40},   // 20+10+10
		{100_000, 1, models.DirectionMixed, 30},   // 10+10+10
	}
	for _, c := range cases {
		got := ScoreInsiderSummary(&models.InsiderSummary{
			TotalValue: c.value, InsiderCount: c.count, NetDirection: c.direction,
		})
		if got != c.want {
			t.Fatalf("score(%v, %d, %s) = %d, want %d", c.value, c.count, c.direction, got, c.want)
		}
	}
}

func TestScoreContractSummaryTiers(t *testing.T) {
	cases := []struct {
		value  float64
		count  int
		sector string
		want   int
	}{
		{150_000_000, 6, "Defense", 100}, // 50+30+20
		{60_000_000, 3, "Defense", 80},   // 40+20+20
		{20_000_000, 1, "Energy", 50},    // 30+10+10
		{2_000_000, 1, "Government", 40}, // 20+10+10
	}
	for _, c := range cases {
		got := ScoreContractSummary(&models.ContractSummary{
			TotalValue: c.value, ContractCount: c.count, Sector: c.sector,
		})
		if got != c.want {
			t.Fatalf("score(%v, %d, %s) = %d, want %d", c.value, c.count, c.sector, got, c.want)
		}
	}
}

func TestCombineSuppressedBelowMinimum(t *testing.T) {
	// Low tier, mixed, single insider: 10+10+10 = 30 < 40 => suppressed.
	s := insiderSummary(models.DirectionMixed, 100_000, 1)
	if got := Combine("AAPL", s, nil, testNow); got != nil {
		t.Fatalf("score-30 signal must be suppressed, got %+v", got)
	}
}

func TestCombineNoInputs(t *testing.T) {
	if got := Combine("AAPL", nil, nil, testNow); got != nil {
		t.Fatalf("no sub-signals must yield nil")
	}
}

func TestCombineInsiderSellGoesShort(t *testing.T) {
	s := insiderSummary(models.DirectionSell, 6_000_000, 3) // score 100
	got := Combine("TSLA", s, nil, testNow)
	if got == nil {
		t.Fatalf("expected signal")
	}
	if got.Direction != models.DirectionShort {
		t.Fatalf("direction = %s, want SHORT", got.Direction)
	}
	if got.SignalType != models.SignalTypeInsider {
		t.Fatalf("signalType = %s", got.SignalType)
	}
	if got.Confidence != models.StrengthHigh {
		t.Fatalf("confidence = %s for score %d", got.Confidence, got.Score)
	}
	if got.SuggestedEntry.StrikeOffset != 0.05 || got.SuggestedEntry.DTE != 45 {
		t.Fatalf("suggestedEntry = %+v, want HIGH preset", got.SuggestedEntry)
	}
	if got.SuggestedEntry.StopPercent != 0.10 {
		t.Fatalf("stopPercent = %v, always 0.10", got.SuggestedEntry.StopPercent)
	}
}

func TestCombineContractsForceLongUnlessInsiderSell(t *testing.T) {
	c := contractSummary("Defense", 150_000_000, 6) // score 100

	got := Combine("LMT", nil, c, testNow)
	if got == nil || got.Direction != models.DirectionLong {
		t.Fatalf("contract-only signal must be LONG: %+v", got)
	}
	if got.SignalType != models.SignalTypeContract {
		t.Fatalf("signalType = %s", got.SignalType)
	}

	sell := insiderSummary(models.DirectionSell, 6_000_000, 3)
	got = Combine("LMT", sell, c, testNow)
	if got == nil || got.Direction != models.DirectionShort {
		t.Fatalf("insider SELL overrides contract bullishness: %+v", got)
	}

	mixed := insiderSummary(models.DirectionMixed, 6_000_000, 3)
	got = Combine("LMT", mixed, c, testNow)
	if got == nil || got.Direction != models.DirectionLong {
		t.Fatalf("MIXED insider with contracts stays LONG: %+v", got)
	}
}

func TestCombineBonusAndReasonOrder(t *testing.T) {
	i := insiderSummary(models.DirectionBuy, 1_500_000, 2) // 30+20+30 = 80
	c := contractSummary("Defense", 60_000_000, 3)         // 40+20+20 = 80
	got := Combine("RTX", i, c, testNow)
	if got == nil {
		t.Fatalf("expected signal")
	}
	if got.Score != 180 { // 80+80+20 bonus
		t.Fatalf("score = %d, want 180", got.Score)
	}
	if got.SignalType != models.SignalTypeCombined {
		t.Fatalf("signalType = %s", got.SignalType)
	}
	if len(got.Reasons) != 3 {
		t.Fatalf("reasons = %v", got.Reasons)
	}
	if got.Reasons[0] != "Insider buying: $1.5M by 2 insider(s)" {
		t.Fatalf("reasons[0] = %q", got.Reasons[0])
	}
	if got.Reasons[1] != "Defense contracts: $60M from Department of Defense" {
		t.Fatalf("reasons[1] = %q", got.Reasons[1])
	}
	if got.Reasons[2] != "COMBINED: Insider activity + Government contracts" {
		t.Fatalf("reasons[2] = %q", got.Reasons[2])
	}
	if !got.GeneratedAt.Equal(testNow) {
		t.Fatalf("generatedAt = %v", got.GeneratedAt)
	}
}

func TestCombineConfidenceBands(t *testing.T) {
	// score 40 => LOW, 60 => MEDIUM, 80 => HIGH
	low := insiderSummary(models.DirectionMixed, 600_000, 1) // 20+10+10 = 40
	got := Combine("X", low, nil, testNow)
	if got == nil || got.Confidence != models.StrengthLow {
		t.Fatalf("score 40 must be LOW: %+v", got)
	}
	med := insiderSummary(models.DirectionBuy, 100_000, 2) // 10+20+30 = 60
	got = Combine("X", med, nil, testNow)
	if got == nil || got.Confidence != models.StrengthMedium {
		t.Fatalf("score 60 must be MEDIUM: %+v", got)
	}
	if got.SuggestedEntry.StrikeOffset != 0.08 || got.SuggestedEntry.DTE != 35 {
		t.Fatalf("MEDIUM preset = %+v", got.SuggestedEntry)
	}
	lowEntry := Combine("X", low, nil, testNow).SuggestedEntry
	if lowEntry.StrikeOffset != 0.10 || lowEntry.DTE != 28 {
		t.Fatalf("LOW preset = %+v", lowEntry)
	}
}

func TestSortCombinedSignals(t *testing.T) {
	a := &models.CombinedSignal{Ticker: "A", Score: 60}
	b := &models.CombinedSignal{Ticker: "B", Score: 95}
	c := &models.CombinedSignal{Ticker: "C", Score: 80}
	list := []*models.CombinedSignal{a, b, c}
	SortCombinedSignals(list)
	if list[0] != b || list[1] != c || list[2] != a {
		t.Fatalf("bad order: %v %v %v", list[0].Ticker, list[1].Ticker, list[2].Ticker)
	}
}

func TestSortInsiderSignalsStrengthThenValue(t *testing.T) {
	list := []models.InsiderSignal{
		{Symbol: "A", SignalStrength: models.StrengthMedium, TotalValue: 900_000},
		{Symbol: "B", SignalStrength: models.StrengthHigh, TotalValue: 100_000},
		{Symbol: "C", SignalStrength: models.StrengthHigh, TotalValue: 2_000_000},
	}
	SortInsiderSignals(list)
	if list[0].Symbol != "C" || list[1].Symbol != "B" || list[2].Symbol != "A" {
		t.Fatalf("bad order: %v", []string{list[0].Symbol, list[1].Symbol, list[2].Symbol})
	}
}
