package usecase

import (
	"context"
	"fmt"
	"time"

	"SignalPull/internal/domain/models"
	drepo "SignalPull/internal/domain/repository"
	"SignalPull/internal/options"
	"SignalPull/internal/service/telegram"
	applogger "SignalPull/pkg/logger"
	"SignalPull/pkg/util"
)

const defaultIV = 0.35

// AlertDispatcher turns generated signals into Telegram alerts. Each
// ticker alerts at most once per dedup bucket; delivery failures are
// logged and counted but never retried here (the next scan regenerates
// the signal anyway).
type AlertDispatcher struct {
	notifier drepo.Notifier
	dedup    drepo.DedupStore
	market   drepo.MarketData
	metrics  drepo.Metrics
	log      *applogger.Logger
	bucket   time.Duration
	now      func() time.Time
}

// NewAlertDispatcher creates the dispatcher. bucket controls how long a
// ticker stays silenced after an alert.
func NewAlertDispatcher(notifier drepo.Notifier, dedup drepo.DedupStore, market drepo.MarketData, metrics drepo.Metrics, l *applogger.Logger, bucket time.Duration) *AlertDispatcher {
	if bucket <= 0 {
		bucket = time.Hour
	}
	return &AlertDispatcher{
		notifier: notifier,
		dedup:    dedup,
		market:   market,
		metrics:  metrics,
		log:      l,
		bucket:   bucket,
		now:      time.Now,
	}
}

// Dispatch formats and sends one signal, pricing a suggested call when
// a live quote is available.
func (d *AlertDispatcher) Dispatch(ctx context.Context, s *models.CombinedSignal) error {
	key := fmt.Sprintf("%s:%s", s.Ticker, util.TimeBucket(d.now(), d.bucket))
	if d.dedup.Seen(key) {
		d.metrics.RecordAlert("deduped")
		return nil
	}

	price, strike, metrics, setup := d.priceSuggestedCall(ctx, s)
	message := telegram.FormatSignal(s, price, strike, metrics, setup)

	if err := d.notifier.Send(ctx, message); err != nil {
		d.metrics.RecordAlert("failed")
		d.log.Error("alert delivery failed",
			applogger.String("ticker", s.Ticker),
			applogger.Error(err),
		)
		return err
	}

	d.dedup.Mark(key)
	d.metrics.RecordAlert("sent")
	d.log.Info("alert sent",
		applogger.String("ticker", s.Ticker),
		applogger.String("direction", s.Direction),
		applogger.Int("score", s.Score),
	)
	return nil
}

// DispatchBatch sends a batch, continuing past individual failures.
func (d *AlertDispatcher) DispatchBatch(ctx context.Context, signals []*models.CombinedSignal) {
	for _, s := range signals {
		_ = d.Dispatch(ctx, s)
	}
}

// SendRaw relays a preformatted message straight to the notifier.
func (d *AlertDispatcher) SendRaw(ctx context.Context, message string) error {
	if err := d.notifier.Send(ctx, message); err != nil {
		d.metrics.RecordAlert("failed")
		return err
	}
	d.metrics.RecordAlert("sent")
	return nil
}

// priceSuggestedCall fetches a quote and prices the entry the signal
// suggests. Any failure degrades to a price-only (or bare) alert.
func (d *AlertDispatcher) priceSuggestedCall(ctx context.Context, s *models.CombinedSignal) (float64, float64, *models.OptionMetrics, *models.SetupScore) {
	if d.market == nil {
		return 0, 0, nil, nil
	}

	quote, err := d.market.Quote(ctx, s.Ticker)
	if err != nil || quote.IsZero() {
		if err != nil {
			d.metrics.RecordFetchError("quote")
		}
		return 0, 0, nil, nil
	}

	if s.SuggestedEntry == nil {
		return quote.Price, 0, nil, nil
	}

	strike := options.StrikeForOffset(quote.Price, s.SuggestedEntry.StrikeOffset)
	metrics, err := options.PriceCall(quote.Price, strike, s.SuggestedEntry.DTE, defaultIV)
	if err != nil {
		return quote.Price, 0, nil, nil
	}

	setup := options.ScoreSetup(metrics)
	return quote.Price, strike, &metrics, &setup
}
