package usecase

import (
	"context"
	"sync"
	"time"

	"SignalPull/internal/domain/models"
	drepo "SignalPull/internal/domain/repository"
	"SignalPull/internal/signal"
	applogger "SignalPull/pkg/logger"
	"SignalPull/pkg/util"
)

// ScannerConfig tunes the watchlist scan.
type ScannerConfig struct {
	BatchSize    int
	BatchDelay   time.Duration
	InsiderDays  int
	ContractDays int
}

// Scanner walks the watchlist in small batches, aggregates insider and
// contract activity per symbol, and produces ranked combined signals.
// Batching plus the inter-batch delay keeps the burst against the
// upstream provider bounded.
type Scanner struct {
	market  drepo.MarketData
	metrics drepo.Metrics
	log     *applogger.Logger
	cfg     ScannerConfig
	now     func() time.Time
	sleep   func(context.Context, time.Duration)

	// guards result slices appended from concurrent batch workers
	mu sync.Mutex
}

// NewScanner creates a Scanner.
func NewScanner(market drepo.MarketData, metrics drepo.Metrics, l *applogger.Logger, cfg ScannerConfig) *Scanner {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 5
	}
	if cfg.BatchDelay <= 0 {
		cfg.BatchDelay = 200 * time.Millisecond
	}
	if cfg.InsiderDays <= 0 {
		cfg.InsiderDays = 30
	}
	if cfg.ContractDays <= 0 {
		cfg.ContractDays = 90
	}
	return &Scanner{
		market:  market,
		metrics: metrics,
		log:     l,
		cfg:     cfg,
		now:     time.Now,
		sleep:   sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}

// Prices fetches current quotes for the given symbols. Symbols that
// fail upstream are skipped, not fatal.
func (s *Scanner) Prices(ctx context.Context, symbols []string) []models.PriceQuote {
	start := s.now()
	quotes := make([]models.PriceQuote, 0, len(symbols))

	s.forEachBatch(ctx, symbols, func(symbol string) {
		quote, err := s.market.Quote(ctx, symbol)
		if err != nil {
			s.metrics.RecordFetchError("quote")
			s.log.Warn("quote fetch failed", applogger.String("symbol", symbol), applogger.Error(err))
			return
		}
		s.metrics.RecordLastPrice(symbol, quote.Price)
		s.appendQuote(&quotes, quote)
	})

	s.metrics.RecordScan("prices", len(symbols))
	s.metrics.RecordLatency("scan_prices", time.Since(start).Seconds())
	return quotes
}

// InsiderScan aggregates insider activity per symbol and keeps signals
// whose total value clears the batch floor, sorted strength then value.
func (s *Scanner) InsiderScan(ctx context.Context, symbols []string, days int) []models.InsiderSignal {
	if days <= 0 {
		days = s.cfg.InsiderDays
	}
	start := s.now()
	from, to := util.RangeDaysBack(s.now(), days)

	signals := make([]models.InsiderSignal, 0, len(symbols))
	s.forEachBatch(ctx, symbols, func(symbol string) {
		txs, err := s.market.InsiderTransactions(ctx, symbol, from, to)
		if err != nil {
			s.metrics.RecordFetchError("insider")
			s.log.Warn("insider fetch failed", applogger.String("symbol", symbol), applogger.Error(err))
			return
		}
		sig, ok := signal.AggregateInsider(symbol, txs)
		if !ok || sig.TotalValue < signal.InsiderBatchMinValue {
			return
		}
		s.metrics.RecordSignal("insider", symbol)
		s.appendInsider(&signals, sig)
	})

	signal.SortInsiderSignals(signals)
	s.metrics.RecordScan("insider", len(symbols))
	s.metrics.RecordLatency("scan_insider", time.Since(start).Seconds())
	return signals
}

// ContractScan aggregates government contract awards per symbol, sorted
// strength then value.
func (s *Scanner) ContractScan(ctx context.Context, symbols []string, days int) []models.ContractSignal {
	if days <= 0 {
		days = s.cfg.ContractDays
	}
	start := s.now()
	from, to := util.RangeDaysBack(s.now(), days)

	signals := make([]models.ContractSignal, 0, len(symbols))
	s.forEachBatch(ctx, symbols, func(symbol string) {
		contracts, err := s.market.GovernmentContracts(ctx, symbol, from, to)
		if err != nil {
			s.metrics.RecordFetchError("contracts")
			s.log.Warn("contracts fetch failed", applogger.String("symbol", symbol), applogger.Error(err))
			return
		}
		sig, ok := signal.AggregateContracts(symbol, contracts)
		if !ok {
			return
		}
		s.metrics.RecordSignal("contract", symbol)
		s.appendContract(&signals, sig)
	})

	signal.SortContractSignals(signals)
	s.metrics.RecordScan("contracts", len(symbols))
	s.metrics.RecordLatency("scan_contracts", time.Since(start).Seconds())
	return signals
}

// Scan produces ranked combined signals for the given symbols. Insider
// and contract data are fetched concurrently per symbol; a symbol whose
// fetches both fail simply yields no signal.
func (s *Scanner) Scan(ctx context.Context, symbols []string, minScore int) []*models.CombinedSignal {
	if minScore <= 0 {
		minScore = signal.DefaultScanMinimum
	}
	start := s.now()
	now := s.now()
	insiderFrom, insiderTo := util.RangeDaysBack(now, s.cfg.InsiderDays)
	contractFrom, contractTo := util.RangeDaysBack(now, s.cfg.ContractDays)

	signals := make([]*models.CombinedSignal, 0, len(symbols))
	s.forEachBatch(ctx, symbols, func(symbol string) {
		var (
			txs       []models.InsiderTransaction
			contracts []models.GovernmentContract
			wg        sync.WaitGroup
		)

		wg.Add(2)
		go func() {
			defer wg.Done()
			var err error
			txs, err = s.market.InsiderTransactions(ctx, symbol, insiderFrom, insiderTo)
			if err != nil {
				s.metrics.RecordFetchError("insider")
				s.log.Warn("insider fetch failed", applogger.String("symbol", symbol), applogger.Error(err))
			}
		}()
		go func() {
			defer wg.Done()
			var err error
			contracts, err = s.market.GovernmentContracts(ctx, symbol, contractFrom, contractTo)
			if err != nil {
				s.metrics.RecordFetchError("contracts")
				s.log.Warn("contracts fetch failed", applogger.String("symbol", symbol), applogger.Error(err))
			}
		}()
		wg.Wait()

		combined := s.combineSymbol(symbol, txs, contracts, now)
		if combined == nil || combined.Score < minScore {
			return
		}
		s.metrics.RecordSignal(combined.SignalType, symbol)
		s.appendCombined(&signals, combined)
	})

	signal.SortCombinedSignals(signals)
	s.metrics.RecordScan("signals", len(symbols))
	s.metrics.RecordLatency("scan_signals", time.Since(start).Seconds())
	return signals
}

// combineSymbol applies the materiality floors and builds the combined
// signal for one symbol.
func (s *Scanner) combineSymbol(symbol string, txs []models.InsiderTransaction, contracts []models.GovernmentContract, now time.Time) *models.CombinedSignal {
	var insiderSummary *models.InsiderSummary
	if insiderSig, ok := signal.AggregateInsider(symbol, txs); ok && insiderSig.TotalValue >= signal.CombinedInsiderMinValue {
		insiderSummary = &models.InsiderSummary{
			NetDirection: insiderSig.NetDirection,
			TotalValue:   insiderSig.TotalValue,
			InsiderCount: insiderSig.InsiderCount,
			LatestDate:   insiderSig.LatestDate,
		}
		insiderSummary.Score = signal.ScoreInsiderSummary(insiderSummary)
	}

	var contractSummary *models.ContractSummary
	if contractSig, ok := signal.AggregateContracts(symbol, contracts); ok && contractSig.TotalContractValue >= signal.CombinedContractMinValue {
		contractSummary = &models.ContractSummary{
			TotalValue:    contractSig.TotalContractValue,
			ContractCount: contractSig.ContractCount,
			PrimaryAgency: contractSig.PrimaryAgency,
			Sector:        contractSig.Sector,
		}
		contractSummary.Score = signal.ScoreContractSummary(contractSummary)
	}

	return signal.Combine(symbol, insiderSummary, contractSummary, now)
}

// forEachBatch runs fn concurrently for each symbol within a batch,
// waiting out the inter-batch delay between batches.
func (s *Scanner) forEachBatch(ctx context.Context, symbols []string, fn func(symbol string)) {
	for start := 0; start < len(symbols); start += s.cfg.BatchSize {
		if ctx.Err() != nil {
			return
		}

		end := start + s.cfg.BatchSize
		if end > len(symbols) {
			end = len(symbols)
		}

		var wg sync.WaitGroup
		for _, symbol := range symbols[start:end] {
			wg.Add(1)
			go func(sym string) {
				defer wg.Done()
				fn(sym)
			}(symbol)
		}
		wg.Wait()

		if end < len(symbols) {
			s.sleep(ctx, s.cfg.BatchDelay)
		}
	}
}

func (s *Scanner) appendQuote(dst *[]models.PriceQuote, q models.PriceQuote) {
	s.mu.Lock()
	defer s.mu.Unlock()
	*dst = append(*dst, q)
}

func (s *Scanner) appendInsider(dst *[]models.InsiderSignal, sig models.InsiderSignal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	*dst = append(*dst, sig)
}

func (s *Scanner) appendContract(dst *[]models.ContractSignal, sig models.ContractSignal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	*dst = append(*dst, sig)
}

func (s *Scanner) appendCombined(dst *[]*models.CombinedSignal, sig *models.CombinedSignal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	*dst = append(*dst, sig)
}
