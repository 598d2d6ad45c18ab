package repository

import (
	"context"

	"SignalPull/internal/domain/models"
	drepo "SignalPull/internal/domain/repository"
	pkgkafka "SignalPull/pkg/kafka"
)

// KafkaSignalPublisher implements SignalPublisher over a Kafka topic.
// Messages are keyed by ticker so per-ticker ordering survives
// partitioning.
type KafkaSignalPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaSignalPublisher creates the publisher.
func NewKafkaSignalPublisher(producer *pkgkafka.Producer, topic string) drepo.SignalPublisher {
	return &KafkaSignalPublisher{producer: producer, topic: topic}
}

func (p *KafkaSignalPublisher) Publish(ctx context.Context, s *models.CombinedSignal) error {
	return p.producer.Publish(ctx, p.topic, []byte(s.Ticker), s)
}

func (p *KafkaSignalPublisher) PublishBatch(ctx context.Context, signals []*models.CombinedSignal) error {
	if len(signals) == 0 {
		return nil
	}
	msgs := make([]pkgkafka.Message, 0, len(signals))
	for _, s := range signals {
		msgs = append(msgs, pkgkafka.Message{Key: []byte(s.Ticker), Value: s})
	}
	return p.producer.PublishBatch(ctx, p.topic, msgs)
}

func (p *KafkaSignalPublisher) Close() error {
	return p.producer.Close()
}
