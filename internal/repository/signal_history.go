package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"SignalPull/internal/domain/models"
	drepo "SignalPull/internal/domain/repository"
	pkgch "SignalPull/pkg/clickhouse"
	applogger "SignalPull/pkg/logger"
)

const signalsTable = "signal_history"

var signalSchema = []string{
	`CREATE TABLE IF NOT EXISTS signal_history (
		generated_at   DateTime,
		ticker         LowCardinality(String),
		direction      LowCardinality(String),
		signal_type    LowCardinality(String),
		confidence     LowCardinality(String),
		score          Int32,
		reasons        Array(String),
		insider_value  Float64,
		contract_value Float64,
		payload        String
	)
	ENGINE = MergeTree()
	PARTITION BY toYYYYMM(generated_at)
	ORDER BY (ticker, generated_at)
	TTL generated_at + INTERVAL 90 DAY`,
}

// ClickHouseSignalHistory implements SignalHistory backed by ClickHouse.
// Every scan's surviving signals are appended; the full signal rides
// along as JSON for ad-hoc queries.
type ClickHouseSignalHistory struct {
	db *sql.DB
	ch *pkgch.Client
	l  *applogger.Logger
}

// NewClickHouseSignalHistory creates the history store.
func NewClickHouseSignalHistory(ch *pkgch.Client, l *applogger.Logger) drepo.SignalHistory {
	return &ClickHouseSignalHistory{db: ch.DB(), ch: ch, l: l}
}

func (s *ClickHouseSignalHistory) Init(ctx context.Context) error {
	return s.ch.InitSchema(ctx, signalSchema)
}

func (s *ClickHouseSignalHistory) StoreBatch(ctx context.Context, signals []*models.CombinedSignal) error {
	if len(signals) == 0 {
		return nil
	}

	start := time.Now()
	values := make([]string, 0, len(signals))
	args := make([]interface{}, 0, len(signals)*10)

	for _, sig := range signals {
		if sig == nil || sig.Ticker == "" {
			continue
		}

		var insiderValue, contractValue float64
		if sig.InsiderData != nil {
			insiderValue = sig.InsiderData.TotalValue
		}
		if sig.ContractData != nil {
			contractValue = sig.ContractData.TotalValue
		}

		payload, err := json.Marshal(sig)
		if err != nil {
			return fmt.Errorf("marshal signal %s: %w", sig.Ticker, err)
		}

		values = append(values, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
		args = append(args,
			sig.GeneratedAt,
			sig.Ticker,
			sig.Direction,
			sig.SignalType,
			sig.Confidence,
			int32(sig.Score),
			sig.Reasons,
			insiderValue,
			contractValue,
			string(payload),
		)
	}
	if len(values) == 0 {
		return nil
	}

	q := fmt.Sprintf(
		"INSERT INTO %s (generated_at, ticker, direction, signal_type, confidence, score, reasons, insider_value, contract_value, payload) VALUES %s",
		signalsTable, strings.Join(values, ","))

	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		s.l.Error("signal history insert failed",
			applogger.Int("signals", len(values)),
			applogger.Error(err),
		)
		return fmt.Errorf("store signals: %w", err)
	}

	s.l.Debug("signal history stored",
		applogger.Int("signals", len(values)),
		applogger.Duration("duration_ms", time.Since(start)),
	)
	return nil
}

func (s *ClickHouseSignalHistory) Health(ctx context.Context) error {
	return s.ch.Health(ctx)
}

func (s *ClickHouseSignalHistory) Close() error {
	return s.ch.Close()
}
