package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"SignalPull/internal/domain/models"
	"SignalPull/internal/service/dedup"
)

type fakeNotifier struct {
	sent []string
	err  error
}

func (f *fakeNotifier) Send(_ context.Context, message string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, message)
	return nil
}

func alertSignal(ticker string) *models.CombinedSignal {
	return &models.CombinedSignal{
		Ticker:         ticker,
		Direction:      models.DirectionLong,
		SignalType:     models.SignalTypeCombined,
		Confidence:     models.StrengthHigh,
		Score:          180,
		Reasons:        []string{"Insider buying: $1.5M by 2 insider(s)"},
		SuggestedEntry: &models.SuggestedEntry{StrikeOffset: 0.05, DTE: 45, StopPercent: 0.10},
		GeneratedAt:    time.Now(),
	}
}

func TestDispatchSendsOncePerBucket(t *testing.T) {
	notifier := &fakeNotifier{}
	metrics := newFakeMetrics()
	market := &fakeMarket{
		quotes: map[string]models.PriceQuote{
			"LMT": {Symbol: "LMT", Price: 470.25, PreviousClose: 468},
		},
	}
	d := NewAlertDispatcher(notifier, dedup.New(time.Hour, 100), market, metrics, testLogger(t), time.Hour)

	if err := d.Dispatch(context.Background(), alertSignal("LMT")); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if err := d.Dispatch(context.Background(), alertSignal("LMT")); err != nil {
		t.Fatalf("dedup dispatch: %v", err)
	}

	if len(notifier.sent) != 1 {
		t.Fatalf("second dispatch in the same bucket must be deduped, sent %d", len(notifier.sent))
	}
	if metrics.get("alert:sent") != 1 || metrics.get("alert:deduped") != 1 {
		t.Fatalf("alert metrics wrong: %+v", metrics.counts)
	}
	if !strings.Contains(notifier.sent[0], "SIGNAL ALERT: LMT LONG") {
		t.Fatalf("message body: %s", notifier.sent[0])
	}
	// quote available: options block priced
	if !strings.Contains(notifier.sent[0], "*Strike:*") {
		t.Fatalf("expected options block in: %s", notifier.sent[0])
	}
}

func TestDispatchFailureDoesNotMarkDedup(t *testing.T) {
	notifier := &fakeNotifier{err: errors.New("telegram down")}
	metrics := newFakeMetrics()
	d := NewAlertDispatcher(notifier, dedup.New(time.Hour, 100), nil, metrics, testLogger(t), time.Hour)

	if err := d.Dispatch(context.Background(), alertSignal("TSLA")); err == nil {
		t.Fatalf("delivery failure must surface")
	}

	// recovery: next dispatch is not silenced by the failed attempt
	notifier.err = nil
	if err := d.Dispatch(context.Background(), alertSignal("TSLA")); err != nil {
		t.Fatalf("retry dispatch: %v", err)
	}
	if len(notifier.sent) != 1 {
		t.Fatalf("retry must go through, sent %d", len(notifier.sent))
	}
	if metrics.get("alert:failed") != 1 {
		t.Fatalf("failed alert not counted")
	}
}

func TestDispatchWithoutMarketDegrades(t *testing.T) {
	notifier := &fakeNotifier{}
	d := NewAlertDispatcher(notifier, dedup.New(time.Hour, 100), nil, newFakeMetrics(), testLogger(t), time.Hour)

	if err := d.Dispatch(context.Background(), alertSignal("NOC")); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	msg := notifier.sent[0]
	if strings.Contains(msg, "*Strike:*") || strings.Contains(msg, "*Price:*") {
		t.Fatalf("no market data means no pricing block: %s", msg)
	}
	if !strings.Contains(msg, "*Reasons:*") {
		t.Fatalf("reasons must still render: %s", msg)
	}
}

func TestSendRaw(t *testing.T) {
	notifier := &fakeNotifier{}
	metrics := newFakeMetrics()
	d := NewAlertDispatcher(notifier, dedup.New(time.Hour, 100), nil, metrics, testLogger(t), time.Hour)

	if err := d.SendRaw(context.Background(), "manual note"); err != nil {
		t.Fatalf("send raw: %v", err)
	}
	if len(notifier.sent) != 1 || notifier.sent[0] != "manual note" {
		t.Fatalf("raw message must pass through untouched: %+v", notifier.sent)
	}
	if metrics.get("alert:sent") != 1 {
		t.Fatalf("raw sends are counted")
	}
}

func TestSignalsHandlerDecodesAndDispatches(t *testing.T) {
	notifier := &fakeNotifier{}
	d := NewAlertDispatcher(notifier, dedup.New(time.Hour, 100), nil, newFakeMetrics(), testLogger(t), time.Hour)
	h := NewSignalsHandler("signals.combined", d)

	if h.Topic() != "signals.combined" {
		t.Fatalf("topic = %s", h.Topic())
	}

	payload := []byte(`{"ticker":"LMT","direction":"LONG","signalType":"COMBINED","confidence":"HIGH","score":180,"reasons":["r"]}`)
	if err := h.Handle(context.Background(), payload); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(notifier.sent) != 1 {
		t.Fatalf("handler must dispatch the decoded signal")
	}

	if err := h.Handle(context.Background(), []byte("{not json")); err == nil {
		t.Fatalf("bad payload must error")
	}
	if err := h.Handle(context.Background(), []byte(`{"score":1}`)); err == nil {
		t.Fatalf("empty ticker must error")
	}
}
