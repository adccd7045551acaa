package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"storefront-service/internal/domain/models"
	"storefront-service/pkg/interfaces"
)

// OrderConsumer is the queue-side order processor: it reads intake payloads,
// persists the ones that parse as a JSON order under a freshly assigned
// identity, and discards everything else.
type OrderConsumer struct {
	brokers   []string
	topic     string
	groupID   string
	repo      interfaces.EntityStore
	isRunning bool
	reader    *kafka.Reader

	// Only touched from the consumer goroutine.
	schemaReady bool
}

func NewOrderConsumer(brokers []string, topic, groupID string, repo interfaces.EntityStore) *OrderConsumer {
	return &OrderConsumer{
		brokers: brokers,
		topic:   topic,
		groupID: groupID,
		repo:    repo,
	}
}

func (c *OrderConsumer) Start(ctx context.Context) error {
	if c.isRunning {
		return nil
	}

	c.reader = kafka.NewReader(kafka.ReaderConfig{
		Brokers: c.brokers,
		Topic:   c.topic,
		GroupID: c.groupID,
	})

	slog.Info("Order queue subscription started",
		"topic", c.topic,
		"brokers", c.brokers,
		"group_id", c.groupID)

	c.isRunning = true

	go c.processMessages(ctx)

	return nil
}

func (c *OrderConsumer) processMessages(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			slog.Info("Order consumer context canceled")
			return
		default:
		}

		msgCtx, msgCancel := context.WithTimeout(ctx, 1*time.Second)
		msg, err := c.reader.FetchMessage(msgCtx)
		msgCancel()

		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				continue
			}

			slog.Error("Error reading message from queue", "error", err)
			time.Sleep(100 * time.Millisecond)
			continue
		}

		slog.Info("Received queue message",
			"payload", string(msg.Value),
			"partition", msg.Partition,
			"offset", msg.Offset)

		if !c.handleMessage(ctx, msg.Value) {
			// Leave the offset uncommitted so the broker redelivers.
			continue
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			slog.Error("Failed to commit queue offset", "error", err, "offset", msg.Offset)
		}
	}
}

// handleMessage reports whether the message is consumed. Malformed payloads
// are consumed without a write; a failed insert is not consumed, delegating
// the retry to queue redelivery.
func (c *OrderConsumer) handleMessage(ctx context.Context, payload []byte) bool {
	var order models.Order
	if err := json.Unmarshal(payload, &order); err != nil {
		slog.Error("Failed to parse queued order, discarding", "error", err, "raw_payload", string(payload))
		return true
	}

	// The backing order table must exist before the insert; a failed ensure
	// leaves the message for redelivery and is retried on the next attempt.
	if !c.schemaReady {
		if err := c.repo.EnsureSchema(ctx); err != nil {
			slog.Error("Failed to ensure storage schema", "error", err)
			return false
		}
		c.schemaReady = true
	}

	// Identity always comes from this side, never from the payload.
	order.PartitionKey = models.OrderPartition
	order.RowKey = uuid.NewString()
	if order.OrderDate.IsZero() {
		order.OrderDate = time.Now().UTC()
	}

	if err := c.repo.InsertOrder(ctx, order); err != nil {
		slog.Error("Failed to save queued order", "error", err, "rowKey", order.RowKey)
		// The insert may have failed because the schema went away; re-check it
		// before the redelivery attempt.
		c.schemaReady = false
		return false
	}

	slog.Info("Queued order processed", "rowKey", order.RowKey)
	return true
}

func (c *OrderConsumer) Shutdown(ctx context.Context) error {
	if !c.isRunning || c.reader == nil {
		return nil
	}

	slog.Info("Order consumer shutting down")

	if err := c.reader.Close(); err != nil {
		slog.Error("Queue reader close failed", "error", err)
	}

	c.isRunning = false
	return nil
}
