package kafka

import (
	"context"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

// OrderQueueProducer pushes order-intake payloads onto the queue topic. The
// payload is opaque text: callers send either a JSON order or a free-text
// notification, and only the consumer decides which it got.
type OrderQueueProducer struct {
	writer *kafka.Writer
	topic  string
}

func NewOrderQueueProducer(brokers []string, topic string) *OrderQueueProducer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
		// Queue is created on first use if absent.
		AllowAutoTopicCreation: true,
		WriteTimeout:           10 * time.Second,
	}

	return &OrderQueueProducer{
		writer: writer,
		topic:  topic,
	}
}

func (p *OrderQueueProducer) Enqueue(ctx context.Context, payload string) error {
	err := p.writer.WriteMessages(ctx, kafka.Message{
		Value: []byte(payload),
	})
	if err != nil {
		slog.Error("Failed to enqueue order payload", "error", err, "topic", p.topic)
		return err
	}

	slog.Info("Order payload enqueued", "topic", p.topic, "payload_size", len(payload))
	return nil
}

func (p *OrderQueueProducer) Close() error {
	return p.writer.Close()
}
