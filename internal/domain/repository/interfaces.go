package repository

import (
	"context"

	"SignalPull/internal/domain/models"
)

// MarketData supplies per-symbol quotes and event lists from the
// upstream provider. Empty lists and all-zero quotes mean "no data",
// never an error.
type MarketData interface {
	Quote(ctx context.Context, symbol string) (models.PriceQuote, error)
	InsiderTransactions(ctx context.Context, symbol, from, to string) ([]models.InsiderTransaction, error)
	GovernmentContracts(ctx context.Context, symbol, from, to string) ([]models.GovernmentContract, error)
}

// QuoteStream delivers live price ticks for the alert watcher.
type QuoteStream interface {
	Connect(ctx context.Context) error
	Subscribe(ctx context.Context) error
	Read(ctx context.Context) (<-chan *models.LiveTick, <-chan error)
	Reconnect(ctx context.Context) error
	Close() error
	IsConnected() bool
}

// Notifier delivers one preformatted message to the fixed destination
// channel.
type Notifier interface {
	Send(ctx context.Context, message string) error
}

// SignalPublisher pushes generated signals to downstream consumers.
type SignalPublisher interface {
	Publish(ctx context.Context, s *models.CombinedSignal) error
	PublishBatch(ctx context.Context, signals []*models.CombinedSignal) error
	Close() error
}

// SignalHistory persists scan results for later review.
type SignalHistory interface {
	Init(ctx context.Context) error
	StoreBatch(ctx context.Context, signals []*models.CombinedSignal) error
	Health(ctx context.Context) error
	Close() error
}

// DedupStore tracks already-alerted keys so a signal is not re-sent
// within its time bucket. Injectable so scenarios can reset it.
type DedupStore interface {
	Seen(key string) bool
	Mark(key string)
}

// Metrics records operational counters for the scan and alert paths.
type Metrics interface {
	RecordScan(kind string, symbols int)
	RecordSignal(kind, symbol string)
	RecordFetchError(kind string)
	RecordAlert(result string)
	RecordLastPrice(symbol string, price float64)
	RecordLatency(op string, seconds float64)
}
