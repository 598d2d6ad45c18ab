package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"SignalPull/internal/domain/models"
)

// SignalsHandler consumes combined signals from Kafka and hands them to
// the alert dispatcher. Decode failures are terminal for the message
// (DLQ territory), dispatch failures bubble up for the consumer's retry
// policy.
type SignalsHandler struct {
	topic      string
	dispatcher *AlertDispatcher
}

// NewSignalsHandler creates the handler for topic.
func NewSignalsHandler(topic string, dispatcher *AlertDispatcher) *SignalsHandler {
	return &SignalsHandler{topic: topic, dispatcher: dispatcher}
}

func (h *SignalsHandler) Topic() string { return h.topic }

func (h *SignalsHandler) Handle(ctx context.Context, data []byte) error {
	var s models.CombinedSignal
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("decode signal: %w", err)
	}
	if s.Ticker == "" {
		return fmt.Errorf("decode signal: empty ticker")
	}
	return h.dispatcher.Dispatch(ctx, &s)
}
