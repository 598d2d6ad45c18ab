package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	scansTotal     *prometheus.CounterVec
	signalsTotal   *prometheus.CounterVec
	fetchErrors    *prometheus.CounterVec
	alertsTotal    *prometheus.CounterVec
	lastPrice      *prometheus.GaugeVec
	latency        *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		scansTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "signalpull_scans_total",
				Help: "Total number of watchlist scans by kind",
			},
			[]string{"kind"},
		),
		signalsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "signalpull_signals_total",
				Help: "Total number of signals generated",
			},
			[]string{"kind", "symbol"},
		),
		fetchErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "signalpull_fetch_errors_total",
				Help: "Total number of upstream fetch errors",
			},
			[]string{"kind"},
		),
		alertsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "signalpull_alerts_total",
				Help: "Total number of alert deliveries by result",
			},
			[]string{"result"},
		),
		lastPrice: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "signalpull_last_price",
				Help: "Last recorded price for a symbol",
			},
			[]string{"symbol"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "signalpull_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordScan records one scan pass over `symbols` tickers.
func (r *Recorder) RecordScan(kind string, symbols int) {
	r.scansTotal.WithLabelValues(kind).Add(float64(symbols))
}

// RecordSignal records one generated signal.
func (r *Recorder) RecordSignal(kind, symbol string) {
	r.signalsTotal.WithLabelValues(kind, symbol).Inc()
}

// RecordFetchError records an upstream fetch failure.
func (r *Recorder) RecordFetchError(kind string) {
	r.fetchErrors.WithLabelValues(kind).Inc()
}

// RecordAlert records an alert delivery outcome (sent, deduped, failed).
func (r *Recorder) RecordAlert(result string) {
	r.alertsTotal.WithLabelValues(result).Inc()
}

// RecordLastPrice records the last price for a symbol.
func (r *Recorder) RecordLastPrice(symbol string, price float64) {
	r.lastPrice.WithLabelValues(symbol).Set(price)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
