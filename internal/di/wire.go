//go:build wireinject
// +build wireinject

package di

import (
	"SignalPull/pkg/config"
	"SignalPull/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,
		ProvideRateLimiter,

		// Infrastructure clients
		ProvideCache,
		ProvideKafkaProducer,
		ProvideKafkaConsumer,
		ProvideClickHouseClient,

		// Market data and delivery services
		ProvideMarketData,
		ProvideQuoteStream,
		ProvideNotifier,
		ProvideDedupStore,
		ProvideSignalPublisher,
		ProvideSignalHistory,

		// Use cases
		ProvideScanner,
		ProvideAlertDispatcher,
		ProvideSignalsHandler,

		// HTTP and application server
		ProvideHTTPHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
