package signal

import (
	"reflect"
	"testing"

	"SignalPull/internal/domain/models"
)

func tx(name, code, date string, shares, price float64) models.InsiderTransaction {
	return models.InsiderTransaction{
		Symbol:           "TEST",
		InsiderName:      name,
		SharesDelta:      shares,
		TransactionDate:  date,
		TransactionCode:  code,
		TransactionPrice: price,
	}
}

func TestAggregateInsiderEmpty(t *testing.T) {
	if _, ok := AggregateInsider("AAPL", nil); ok {
		t.Fatalf("empty input must yield no signal")
	}
	if _, ok := AggregateInsider("AAPL", []models.InsiderTransaction{}); ok {
		t.Fatalf("empty slice must yield no signal")
	}
}

func TestAggregateInsiderClusterBuy(t *testing.T) {
	// $1.2M buys vs $200K sells by 3 distinct insiders
	txs := []models.InsiderTransaction{
		tx("Alice", "P", "2025-06-10", 5000, 100),  // $500K buy
		tx("Bob", "P", "2025-06-08", 7000, 100),    // $700K buy
		tx("Carol", "S", "2025-06-05", -2000, 100), // $200K sell
	}
	s, ok := AggregateInsider("LMT", txs)
	if !ok {
		t.Fatalf("expected signal")
	}
	if s.NetDirection != models.DirectionBuy {
		t.Fatalf("netDirection = %s, want BUY (1.2M > 200K*1.5)", s.NetDirection)
	}
	if s.SignalStrength != models.StrengthHigh {
		t.Fatalf("strength = %s, want HIGH", s.SignalStrength)
	}
	if !s.IsCluster {
		t.Fatalf("3 insiders must be a cluster")
	}
	if s.InsiderCount != 3 {
		t.Fatalf("insiderCount = %d", s.InsiderCount)
	}
	if s.TotalValue != 1_200_000 {
		t.Fatalf("totalValue = %v, want max(buy, sell) = 1.2M", s.TotalValue)
	}
	if s.TotalShares != 10000 {
		t.Fatalf("totalShares = %v, want |12000-2000|", s.TotalShares)
	}
	if s.LatestDate != "2025-06-10" {
		t.Fatalf("latestDate = %s", s.LatestDate)
	}
	// avgPrice = totalValue / (buyShares + sellShares) = 1.2M / 14000
	want := 1_200_000.0 / 14000
	if s.AvgPrice != want {
		t.Fatalf("avgPrice = %v, want %v", s.AvgPrice, want)
	}
}

func TestAggregateInsiderMixedWithinMargin(t *testing.T) {
	// $300K buy vs $250K sell: neither side clears the 1.5x margin
	txs := []models.InsiderTransaction{
		tx("Alice", "P", "2025-06-01", 3000, 100),
		tx("Alice", "S", "2025-06-02", -2500, 100),
	}
	s, ok := AggregateInsider("X", txs)
	if !ok {
		t.Fatalf("expected signal")
	}
	if s.NetDirection != models.DirectionMixed {
		t.Fatalf("netDirection = %s, want MIXED", s.NetDirection)
	}
	if s.InsiderCount != 1 || s.IsCluster {
		t.Fatalf("single insider must not cluster")
	}
	// $300K value, 1 insider => MEDIUM
	if s.SignalStrength != models.StrengthMedium {
		t.Fatalf("strength = %s, want MEDIUM", s.SignalStrength)
	}
}

func TestAggregateInsiderUnknownCodes(t *testing.T) {
	// M (option exercise) and G (gift) are outside both code sets: they
	// count toward insiders and latest date but not buy/sell totals.
	txs := []models.InsiderTransaction{
		tx("Alice", "M", "2025-06-20", 9000, 50),
		tx("Bob", "P", "2025-06-01", 1000, 50),
	}
	s, ok := AggregateInsider("X", txs)
	if !ok {
		t.Fatalf("expected signal")
	}
	if s.TotalValue != 50_000 {
		t.Fatalf("totalValue = %v, only the P trade counts", s.TotalValue)
	}
	if s.InsiderCount != 2 {
		t.Fatalf("insiderCount = %d, unknown-code insiders still count", s.InsiderCount)
	}
	if s.LatestDate != "2025-06-20" {
		t.Fatalf("latestDate = %s, unknown-code dates still count", s.LatestDate)
	}
}

func TestAggregateInsiderMissingPrice(t *testing.T) {
	txs := []models.InsiderTransaction{
		tx("Alice", "P", "2025-06-01", 5000, 0),
	}
	s, ok := AggregateInsider("X", txs)
	if !ok {
		t.Fatalf("expected signal")
	}
	if s.TotalValue != 0 {
		t.Fatalf("totalValue = %v, want 0 for missing price", s.TotalValue)
	}
	if s.AvgPrice != 0 {
		t.Fatalf("avgPrice = %v, want 0", s.AvgPrice)
	}
}

func TestAggregateInsiderIdempotent(t *testing.T) {
	txs := []models.InsiderTransaction{
		tx("Alice", "P", "2025-06-10", 5000, 100),
		tx("Bob", "S", "2025-06-08", -3000, 90),
	}
	a, _ := AggregateInsider("X", txs)
	b, _ := AggregateInsider("X", txs)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("aggregation must be deterministic: %+v vs %+v", a, b)
	}
}

func TestAggregateInsiderSampleTruncation(t *testing.T) {
	txs := make([]models.InsiderTransaction, 15)
	for i := range txs {
		txs[i] = tx("Alice", "P", "2025-06-01", 100, 10)
	}
	s, _ := AggregateInsider("X", txs)
	if len(s.Transactions) != 10 {
		t.Fatalf("sample = %d, want 10", len(s.Transactions))
	}
}
