package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"SignalPull/internal/domain/models"
	applogger "SignalPull/pkg/logger"
)

func testLogger(t *testing.T) *applogger.Logger {
	t.Helper()
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

type fakeMarket struct {
	mu        sync.Mutex
	quotes    map[string]models.PriceQuote
	insiders  map[string][]models.InsiderTransaction
	contracts map[string][]models.GovernmentContract
	failing   map[string]bool
	calls     int
}

func (m *fakeMarket) count() {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
}

func (m *fakeMarket) Quote(_ context.Context, symbol string) (models.PriceQuote, error) {
	m.count()
	if m.failing[symbol] {
		return models.PriceQuote{}, errors.New("upstream down")
	}
	return m.quotes[symbol], nil
}

func (m *fakeMarket) InsiderTransactions(_ context.Context, symbol, _, _ string) ([]models.InsiderTransaction, error) {
	m.count()
	if m.failing[symbol] {
		return nil, errors.New("upstream down")
	}
	return m.insiders[symbol], nil
}

func (m *fakeMarket) GovernmentContracts(_ context.Context, symbol, _, _ string) ([]models.GovernmentContract, error) {
	m.count()
	if m.failing[symbol] {
		return nil, errors.New("upstream down")
	}
	return m.contracts[symbol], nil
}

type fakeMetrics struct {
	mu     sync.Mutex
	counts map[string]int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{counts: make(map[string]int)}
}

func (f *fakeMetrics) bump(key string) {
	f.mu.Lock()
	f.counts[key]++
	f.mu.Unlock()
}

func (f *fakeMetrics) get(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counts[key]
}

func (f *fakeMetrics) RecordScan(kind string, _ int)        { f.bump("scan:" + kind) }
func (f *fakeMetrics) RecordSignal(kind, _ string)          { f.bump("signal:" + kind) }
func (f *fakeMetrics) RecordFetchError(kind string)         { f.bump("fetch_error:" + kind) }
func (f *fakeMetrics) RecordAlert(result string)            { f.bump("alert:" + result) }
func (f *fakeMetrics) RecordLastPrice(string, float64)      {}
func (f *fakeMetrics) RecordLatency(string, float64)        {}

func buyTransactions(insiders int, shares, price float64) []models.InsiderTransaction {
	txs := make([]models.InsiderTransaction, 0, insiders)
	names := []string{"Alice Roe", "Bob Doe", "Carol Poe", "Dan Moe"}
	for i := 0; i < insiders; i++ {
		txs = append(txs, models.InsiderTransaction{
			InsiderName:      names[i%len(names)],
			SharesDelta:      shares,
			TransactionCode:  "P",
			TransactionPrice: price,
			TransactionDate:  "2025-06-10",
		})
	}
	return txs
}

func defenseContracts(n int, value float64) []models.GovernmentContract {
	out := make([]models.GovernmentContract, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, models.GovernmentContract{
			Agency:           "Department of Defense",
			AwardDescription: "missile systems",
			TotalValue:       value,
			ActionDate:       "2025-06-01",
			Recipient:        "Prime Corp",
		})
	}
	return out
}

func TestScanGeneratesRankedSignals(t *testing.T) {
	market := &fakeMarket{
		insiders: map[string][]models.InsiderTransaction{
			// 3 insiders x $2M buys: strong insider signal
			"LMT": buyTransactions(3, 10_000, 200),
			// single $120K buy: clears materiality but scores low
			"RTX": buyTransactions(1, 600, 200),
		},
		contracts: map[string][]models.GovernmentContract{
			"LMT": defenseContracts(3, 20_000_000),
		},
	}
	s := NewScanner(market, newFakeMetrics(), testLogger(t), ScannerConfig{BatchSize: 5, BatchDelay: time.Millisecond})

	signals := s.Scan(context.Background(), []string{"RTX", "LMT"}, 40)
	if len(signals) != 2 {
		t.Fatalf("expected two signals, got %d", len(signals))
	}
	if signals[0].Ticker != "LMT" {
		t.Fatalf("signals must be sorted score desc, got %s first", signals[0].Ticker)
	}
	if signals[0].SignalType != models.SignalTypeCombined {
		t.Fatalf("LMT has both inputs, type = %s", signals[0].SignalType)
	}
	if signals[1].SignalType != models.SignalTypeInsider {
		t.Fatalf("RTX is insider-only, type = %s", signals[1].SignalType)
	}
}

func TestScanMinScoreFilters(t *testing.T) {
	market := &fakeMarket{
		insiders: map[string][]models.InsiderTransaction{
			"RTX": buyTransactions(1, 600, 200), // score 10+10+30 = 50
		},
	}
	s := NewScanner(market, newFakeMetrics(), testLogger(t), ScannerConfig{BatchSize: 5, BatchDelay: time.Millisecond})

	if got := s.Scan(context.Background(), []string{"RTX"}, 90); len(got) != 0 {
		t.Fatalf("minScore 90 must suppress a score-50 signal, got %+v", got[0])
	}
	if got := s.Scan(context.Background(), []string{"RTX"}, 50); len(got) != 1 {
		t.Fatalf("minScore 50 keeps the signal")
	}
}

func TestScanMaterialityFloors(t *testing.T) {
	market := &fakeMarket{
		insiders: map[string][]models.InsiderTransaction{
			// $90K total: below the $100K combined floor
			"AAPL": buyTransactions(1, 450, 200),
		},
		contracts: map[string][]models.GovernmentContract{
			// $800K: below the $1M combined floor
			"AAPL": defenseContracts(1, 800_000),
		},
	}
	s := NewScanner(market, newFakeMetrics(), testLogger(t), ScannerConfig{BatchSize: 5, BatchDelay: time.Millisecond})

	if got := s.Scan(context.Background(), []string{"AAPL"}, 1); len(got) != 0 {
		t.Fatalf("immaterial activity must not produce a signal, got %+v", got[0])
	}
}

func TestScanFailingSymbolSkipped(t *testing.T) {
	metrics := newFakeMetrics()
	market := &fakeMarket{
		insiders: map[string][]models.InsiderTransaction{
			"LMT": buyTransactions(3, 10_000, 200),
		},
		failing: map[string]bool{"BAD": true},
	}
	s := NewScanner(market, metrics, testLogger(t), ScannerConfig{BatchSize: 5, BatchDelay: time.Millisecond})

	signals := s.Scan(context.Background(), []string{"BAD", "LMT"}, 40)
	if len(signals) != 1 || signals[0].Ticker != "LMT" {
		t.Fatalf("healthy symbols must survive a failing one: %+v", signals)
	}
	if metrics.get("fetch_error:insider") == 0 || metrics.get("fetch_error:contracts") == 0 {
		t.Fatalf("fetch errors must be counted")
	}
}

func TestScanBatchesWithDelay(t *testing.T) {
	market := &fakeMarket{}
	s := NewScanner(market, newFakeMetrics(), testLogger(t), ScannerConfig{BatchSize: 2, BatchDelay: time.Millisecond})

	var sleeps int
	s.sleep = func(context.Context, time.Duration) { sleeps++ }

	s.Scan(context.Background(), []string{"A", "B", "C", "D", "E"}, 1)
	// 3 batches (2+2+1) means 2 inter-batch delays
	if sleeps != 2 {
		t.Fatalf("expected 2 inter-batch delays, got %d", sleeps)
	}
}

func TestInsiderScanBatchFloor(t *testing.T) {
	market := &fakeMarket{
		insiders: map[string][]models.InsiderTransaction{
			"BIG":   buyTransactions(1, 600, 200), // $120K
			"SMALL": buyTransactions(1, 100, 200), // $20K, below $50K floor
		},
	}
	s := NewScanner(market, newFakeMetrics(), testLogger(t), ScannerConfig{BatchSize: 5, BatchDelay: time.Millisecond})

	signals := s.InsiderScan(context.Background(), []string{"BIG", "SMALL"}, 30)
	if len(signals) != 1 || signals[0].Symbol != "BIG" {
		t.Fatalf("batch floor must drop the small signal: %+v", signals)
	}
}

func TestPricesSkipsFailures(t *testing.T) {
	market := &fakeMarket{
		quotes: map[string]models.PriceQuote{
			"AAPL": {Symbol: "AAPL", Price: 210.5, PreviousClose: 208},
		},
		failing: map[string]bool{"BAD": true},
	}
	s := NewScanner(market, newFakeMetrics(), testLogger(t), ScannerConfig{BatchSize: 5, BatchDelay: time.Millisecond})

	quotes := s.Prices(context.Background(), []string{"AAPL", "BAD"})
	if len(quotes) != 1 || quotes[0].Symbol != "AAPL" {
		t.Fatalf("failed quote must be skipped: %+v", quotes)
	}
}
