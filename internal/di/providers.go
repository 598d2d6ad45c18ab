package di

import (
	"fmt"

	drepo "SignalPull/internal/domain/repository"
	"SignalPull/internal/handler/api"
	internalrepo "SignalPull/internal/repository"
	"SignalPull/internal/service/dedup"
	"SignalPull/internal/service/finnhub"
	"SignalPull/internal/service/ratelimit"
	"SignalPull/internal/service/telegram"
	"SignalPull/internal/usecase"
	"SignalPull/pkg/cache"
	pkgch "SignalPull/pkg/clickhouse"
	"SignalPull/pkg/config"
	xhttp "SignalPull/pkg/http"
	pkgkafka "SignalPull/pkg/kafka"
	applogger "SignalPull/pkg/logger"
	"SignalPull/pkg/metrics"
	"SignalPull/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideCache picks the cache backend: layered memory+Redis when Redis
// is enabled, in-process memory otherwise.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if !cfg.Redis.Enabled {
		return cache.NewMemoryCache(
			cache.WithMemoryMaxSize(cfg.Cache.MemoryMaxSize),
		), nil
	}

	rc, err := cache.NewRedisCache(
		cache.WithRedisHost(cfg.Redis.Host),
		cache.WithRedisPort(cfg.Redis.Port),
		cache.WithRedisPassword(cfg.Redis.Password),
		cache.WithRedisDB(cfg.Redis.DB),
		cache.WithRedisPrefix(cfg.Redis.Prefix),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return cache.NewLayeredCache(rc,
		cache.WithLayeredMemorySize(cfg.Cache.MemoryMaxSize),
		cache.WithLayeredMemoryTTL(cfg.Cache.MemoryTTL),
	), nil
}

// ProvideRateLimiter creates the shared upstream token bucket set.
func ProvideRateLimiter() *ratelimit.Limiter {
	return ratelimit.New()
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() drepo.Metrics {
	return metrics.New()
}

// ProvideMarketData creates the Finnhub REST client.
func ProvideMarketData(cfg *config.Config, c cache.Service, limiter *ratelimit.Limiter, l *applogger.Logger) drepo.MarketData {
	return finnhub.New(finnhub.ClientConfig{
		APIKey:        cfg.Finnhub.APIKey,
		BaseURL:       cfg.Finnhub.BaseURL,
		Timeout:       cfg.Finnhub.Timeout,
		RatePerMinute: cfg.Finnhub.RateLimit.PerMinute,
		RateBurst:     cfg.Finnhub.RateLimit.Burst,
		QuoteTTL:      cfg.Finnhub.CacheTTL.Quote,
		InsiderTTL:    cfg.Finnhub.CacheTTL.Insider,
		ContractTTL:   cfg.Finnhub.CacheTTL.Contracts,
	}, c, limiter, l)
}

// ProvideQuoteStream creates the Finnhub WebSocket stream over the
// configured watchlist.
func ProvideQuoteStream(cfg *config.Config, l *applogger.Logger) drepo.QuoteStream {
	return finnhub.NewStream(
		cfg.Finnhub.APIKey,
		cfg.Finnhub.WebSocketURL,
		cfg.Scan.Watchlist,
		cfg.Finnhub.ReconnectDelay,
		cfg.Finnhub.PingInterval,
		l,
	)
}

// ProvideNotifier creates the Telegram channel notifier. Missing
// credentials are reported per send, not at startup.
func ProvideNotifier(cfg *config.Config, l *applogger.Logger) drepo.Notifier {
	return telegram.New(cfg.Telegram.BotToken, cfg.Telegram.ChannelID, cfg.Telegram.Timeout, l)
}

// ProvideDedupStore creates the alert dedup store.
func ProvideDedupStore(cfg *config.Config) drepo.DedupStore {
	return dedup.New(cfg.Telegram.DedupTTL, cfg.Telegram.DedupLimit)
}

// ProvideScanner creates the watchlist scanner use case.
func ProvideScanner(market drepo.MarketData, m drepo.Metrics, l *applogger.Logger, cfg *config.Config) *usecase.Scanner {
	return usecase.NewScanner(market, m, l, usecase.ScannerConfig{
		BatchSize:    cfg.Scan.BatchSize,
		BatchDelay:   cfg.Scan.BatchDelay,
		InsiderDays:  cfg.Scan.InsiderDays,
		ContractDays: cfg.Scan.ContractDays,
	})
}

// ProvideAlertDispatcher creates the alert dispatcher use case.
func ProvideAlertDispatcher(
	notifier drepo.Notifier,
	store drepo.DedupStore,
	market drepo.MarketData,
	m drepo.Metrics,
	l *applogger.Logger,
	cfg *config.Config,
) *usecase.AlertDispatcher {
	return usecase.NewAlertDispatcher(notifier, store, market, m, l, cfg.Telegram.DedupTTL)
}

// ProvideKafkaProducer creates a Kafka producer, or nil when Kafka is
// disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.BatchTimeout),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideSignalPublisher wraps the producer as a signal publisher.
func ProvideSignalPublisher(producer *pkgkafka.Producer, cfg *config.Config) drepo.SignalPublisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaSignalPublisher(producer, cfg.Kafka.SignalsTopic)
}

// ProvideKafkaConsumer creates the signals consumer, or nil when Kafka
// is disabled.
func ProvideKafkaConsumer(cfg *config.Config, l *applogger.Logger) (*pkgkafka.Consumer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	consumer, err := pkgkafka.NewConsumer(l,
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideSignalsHandler creates the Kafka message handler for the
// signals topic, or nil when Kafka is disabled.
func ProvideSignalsHandler(cfg *config.Config, dispatcher *usecase.AlertDispatcher) pkgkafka.MessageHandler {
	if !cfg.Kafka.Enabled {
		return nil
	}
	return usecase.NewSignalsHandler(cfg.Kafka.SignalsTopic, dispatcher)
}

// ProvideClickHouseClient creates a ClickHouse client, or nil when
// ClickHouse is disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.ClickHouse.Enabled {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvideSignalHistory wraps the ClickHouse client as signal history
// storage.
func ProvideSignalHistory(ch *pkgch.Client, l *applogger.Logger) drepo.SignalHistory {
	if ch == nil {
		return nil
	}
	return internalrepo.NewClickHouseSignalHistory(ch, l)
}

// ProvideHTTPHandler creates the Echo API handler.
func ProvideHTTPHandler(l *applogger.Logger, scanner *usecase.Scanner, dispatcher *usecase.AlertDispatcher, cfg *config.Config) xhttp.Handler {
	return api.NewHandler(l, scanner, dispatcher, cfg.Scan.Watchlist)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	scanner *usecase.Scanner,
	dispatcher *usecase.AlertDispatcher,
	m drepo.Metrics,
	stream drepo.QuoteStream,
	publisher drepo.SignalPublisher,
	history drepo.SignalHistory,
	consumer *pkgkafka.Consumer,
	kh pkgkafka.MessageHandler,
	c cache.Service,
	handler xhttp.Handler,
) *server.App {
	return server.New(cfg, l, scanner, dispatcher, m, stream, publisher, history, consumer, kh, c, handler)
}
