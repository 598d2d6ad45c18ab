package server

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"SignalPull/internal/domain/models"
	drepo "SignalPull/internal/domain/repository"
	"SignalPull/internal/service/telegram"
	"SignalPull/internal/usecase"
	"SignalPull/pkg/cache"
	"SignalPull/pkg/config"
	xhttp "SignalPull/pkg/http"
	pkgkafka "SignalPull/pkg/kafka"
	applogger "SignalPull/pkg/logger"
)

const (
	stopAlertFraction   = 0.10
	targetAlertFraction = 0.20
)

// watchLevel tracks a live-alerted ticker against its scan-time price.
type watchLevel struct {
	entry   float64
	alerted bool
}

// App encapsulates the entire application lifecycle: the HTTP API, the
// periodic watchlist scan, the live-price watcher, and the optional
// Kafka/ClickHouse sides.
type App struct {
	cfg        *config.Config
	log        *applogger.Logger
	scanner    *usecase.Scanner
	dispatcher *usecase.AlertDispatcher
	metrics    drepo.Metrics
	stream     drepo.QuoteStream
	publisher  drepo.SignalPublisher
	history    drepo.SignalHistory
	consumer   *pkgkafka.Consumer
	kh         pkgkafka.MessageHandler
	cache      cache.Service
	httpServer *xhttp.Server

	mu    sync.Mutex
	watch map[string]*watchLevel
	wg    sync.WaitGroup
}

// New creates a new App instance with all dependencies. publisher,
// history, consumer and kh may be nil when the corresponding backend is
// disabled.
func New(
	cfg *config.Config,
	l *applogger.Logger,
	scanner *usecase.Scanner,
	dispatcher *usecase.AlertDispatcher,
	metrics drepo.Metrics,
	stream drepo.QuoteStream,
	publisher drepo.SignalPublisher,
	history drepo.SignalHistory,
	consumer *pkgkafka.Consumer,
	kh pkgkafka.MessageHandler,
	c cache.Service,
	handler xhttp.Handler,
) *App {
	app := &App{
		cfg:        cfg,
		log:        l,
		scanner:    scanner,
		dispatcher: dispatcher,
		metrics:    metrics,
		stream:     stream,
		publisher:  publisher,
		history:    history,
		consumer:   consumer,
		kh:         kh,
		cache:      c,
		watch:      make(map[string]*watchLevel),
	}
	app.httpServer = xhttp.NewServer(handler,
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithLogger(l),
	)
	return app
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if a.history != nil {
		initCtx, initCancel := context.WithTimeout(ctx, 10*time.Second)
		if err := a.history.Init(initCtx); err != nil {
			initCancel()
			return err
		}
		initCancel()
		a.log.Info("signal history ready")
	}

	if a.consumer != nil && a.kh != nil {
		a.consumer.RegisterHandler(a.kh)
		if err := a.consumer.Start(); err != nil {
			return err
		}
		a.log.Info("kafka consumer started", applogger.String("topic", a.kh.Topic()))
	}

	if err := a.httpServer.Start(); err != nil {
		return err
	}
	a.log.Info("http server started", applogger.Int("port", a.cfg.Server.Port))

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.scanLoop(ctx)
	}()
	a.log.Info("scan loop started",
		applogger.Int("watchlist", len(a.cfg.Scan.Watchlist)),
		applogger.Duration("interval", a.cfg.Scan.Interval),
	)

	if a.stream != nil {
		a.wg.Add(1)
		go func() {
			defer a.wg.Done()
			a.watchLoop(ctx)
		}()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	cancel()
	return a.shutdown()
}

// scanLoop runs one scan immediately and then on every interval tick.
func (a *App) scanLoop(ctx context.Context) {
	interval := a.cfg.Scan.Interval
	if interval <= 0 {
		interval = 15 * time.Minute
	}

	a.runScan(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.runScan(ctx)
		}
	}
}

// runScan executes one full watchlist scan and routes the results:
// history first, then Kafka when enabled (the consumer alerts), else
// direct dispatch.
func (a *App) runScan(ctx context.Context) {
	start := time.Now()
	signals := a.scanner.Scan(ctx, a.cfg.Scan.Watchlist, a.cfg.Scan.MinScore)
	a.metrics.RecordLatency("scan", time.Since(start).Seconds())

	a.log.Info("scan complete",
		applogger.Int("signals", len(signals)),
		applogger.Duration("took", time.Since(start)),
	)
	if len(signals) == 0 {
		return
	}

	if a.history != nil {
		if err := a.history.StoreBatch(ctx, signals); err != nil {
			a.log.Warn("history store failed", applogger.Error(err))
		}
	}

	if a.publisher != nil {
		if err := a.publisher.PublishBatch(ctx, signals); err != nil {
			a.log.Error("signal publish failed", applogger.Error(err))
			a.dispatcher.DispatchBatch(ctx, signals)
		}
	} else {
		a.dispatcher.DispatchBatch(ctx, signals)
	}

	a.trackSignals(ctx, signals)
}

// trackSignals records scan-time prices for signalled tickers so the
// live watcher can alert on stop or target moves.
func (a *App) trackSignals(ctx context.Context, signals []*models.CombinedSignal) {
	symbols := make([]string, 0, len(signals))
	for _, s := range signals {
		symbols = append(symbols, s.Ticker)
	}
	quotes := a.scanner.Prices(ctx, symbols)

	a.mu.Lock()
	defer a.mu.Unlock()
	for _, q := range quotes {
		if q.Price <= 0 {
			continue
		}
		a.watch[q.Symbol] = &watchLevel{entry: q.Price}
	}
}

// watchLoop consumes the live tick stream, reconnecting on stream
// errors until the context ends.
func (a *App) watchLoop(ctx context.Context) {
	if err := a.stream.Connect(ctx); err != nil {
		a.log.Error("stream connect failed", applogger.Error(err))
		if err := a.stream.Reconnect(ctx); err != nil {
			return
		}
	}
	if err := a.stream.Subscribe(ctx); err != nil {
		a.log.Warn("stream subscribe failed", applogger.Error(err))
	}
	a.log.Info("live price watcher started")

	for {
		ticks, errs := a.stream.Read(ctx)
	read:
		for {
			select {
			case <-ctx.Done():
				_ = a.stream.Close()
				return
			case tick, ok := <-ticks:
				if !ok {
					break read
				}
				a.handleTick(ctx, tick)
			case err, ok := <-errs:
				if ok && err != nil {
					a.log.Warn("stream read error", applogger.Error(err))
				}
				break read
			}
		}

		if ctx.Err() != nil {
			_ = a.stream.Close()
			return
		}
		if err := a.stream.Reconnect(ctx); err != nil {
			a.log.Error("stream reconnect failed", applogger.Error(err))
			return
		}
		if err := a.stream.Subscribe(ctx); err != nil {
			a.log.Warn("stream subscribe failed", applogger.Error(err))
		}
	}
}

// handleTick updates the last-price gauge and fires a stop or target
// alert the first time a tracked ticker crosses its level.
func (a *App) handleTick(ctx context.Context, tick *models.LiveTick) {
	if tick == nil || tick.Price <= 0 {
		return
	}
	a.metrics.RecordLastPrice(tick.Symbol, tick.Price)

	a.mu.Lock()
	level, ok := a.watch[tick.Symbol]
	if !ok || level.alerted {
		a.mu.Unlock()
		return
	}

	var kind, note string
	switch {
	case tick.Price <= level.entry*(1-stopAlertFraction):
		kind = "danger"
		note = "Price broke the stop level, down more than 10% from scan entry."
	case tick.Price >= level.entry*(1+targetAlertFraction):
		kind = "success"
		note = "Price reached the target level, up more than 20% from scan entry."
	default:
		a.mu.Unlock()
		return
	}
	level.alerted = true
	a.mu.Unlock()

	msg := telegram.FormatAlert(tick.Symbol, kind, note, time.Now())
	if err := a.dispatcher.SendRaw(ctx, msg); err != nil {
		a.log.Warn("level alert failed",
			applogger.String("ticker", tick.Symbol),
			applogger.Error(err),
		)
	}
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
	}

	a.wg.Wait()

	if a.consumer != nil {
		if err := a.consumer.Stop(shutdownCtx); err != nil {
			a.log.Warn("kafka consumer stop error", applogger.Error(err))
		}
	}
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.log.Warn("publisher close error", applogger.Error(err))
		}
	}
	if a.history != nil {
		if err := a.history.Close(); err != nil {
			a.log.Warn("history close error", applogger.Error(err))
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.log.Warn("cache close error", applogger.Error(err))
		}
	}

	a.log.Info("shutdown complete")
	return nil
}
