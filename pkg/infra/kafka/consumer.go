package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
)

// Consumer reads one topic within a consumer group and hands each message to
// a handler. Handler errors are logged and the offset is committed anyway;
// the rating pipeline tolerates this because the status table is
// re-scanned by the drainer.
type Consumer struct {
	reader  *kafka.Reader
	handler func(ctx context.Context, key, value []byte) error
}

func NewConsumer(client *Client, topic, groupID string, handler func(ctx context.Context, key, value []byte) error) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        client.Brokers(),
		Topic:          topic,
		GroupID:        groupID,
		Dialer:         client.Dialer(),
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
	})

	return &Consumer{
		reader:  reader,
		handler: handler,
	}
}

// Run consumes until the context is cancelled.
func (c *Consumer) Run(ctx context.Context) {
	defer c.reader.Close()

	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				slog.InfoContext(ctx, "Kafka consumer stopped", "topic", c.reader.Config().Topic)
				return
			}
			slog.ErrorContext(ctx, "Failed to read kafka message", "topic", c.reader.Config().Topic, "error", err)
			continue
		}

		if err := c.handler(ctx, msg.Key, msg.Value); err != nil {
			slog.ErrorContext(ctx, "Kafka handler failed",
				"topic", c.reader.Config().Topic,
				"key", string(msg.Key),
				"error", err,
			)
		}
	}
}

// DecodeELOPendingEvent parses an ELOPendingEvent payload.
func DecodeELOPendingEvent(value []byte) (*ELOPendingEvent, error) {
	var event ELOPendingEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return nil, err
	}
	return &event, nil
}
