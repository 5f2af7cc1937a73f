package broker

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"safeCast/internal/modules/coercion/domain"
)

type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

type KafkaConsumer struct {
	reader  messageReader
	backoff time.Duration
}

func NewKafkaConsumer(brokers []string, groupID string, topic string) *KafkaConsumer {
	return &KafkaConsumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: brokers,
			GroupID: groupID,
			Topic:   topic,
		}),
		backoff: time.Second,
	}
}

// Consume reads until ctx ends, handing every record to handler. Handler
// errors are logged and do not stop the loop.
func (c *KafkaConsumer) Consume(ctx context.Context, handler func(*domain.Message) error) error {
	defer func() {
		if err := c.reader.Close(); err != nil {
			slog.Warn("kafka reader close error", slog.Any("error", err))
		}
	}()
	for {
		m, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, io.EOF) {
				return err
			}
			slog.Warn("kafka read error", slog.Any("error", err))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.backoff):
			}
			continue
		}
		msg := decodeMessage(m)
		slog.Info("kafka message consumed",
			slog.String("topic", m.Topic),
			slog.Int("partition", m.Partition),
			slog.Int64("offset", m.Offset),
			slog.String("action", msg.Action),
			slog.String("requestId", msg.RequestID),
		)
		if err := handler(msg); err != nil {
			slog.Warn("kafka handler error", slog.String("requestId", msg.RequestID), slog.Any("error", err))
		}
	}
}

// rawEvent is the optional envelope around a request. Records that are not
// an envelope are treated as a bare command.
type rawEvent struct {
	Action    string            `json:"action"`
	RequestID string            `json:"requestId"`
	Metadata  map[string]string `json:"metadata"`
	Data      json.RawMessage   `json:"data"`
}

func decodeMessage(m kafka.Message) *domain.Message {
	msg := &domain.Message{
		Topic:     m.Topic,
		Action:    domain.ActionRequested,
		RequestID: strings.TrimSpace(string(m.Key)),
		Data:      json.RawMessage(m.Value),
		Timestamp: time.Now().UTC(),
	}

	var event rawEvent
	if err := json.Unmarshal(m.Value, &event); err == nil && len(event.Data) > 0 {
		msg.Action = firstNonEmpty(event.Action, msg.Action)
		msg.RequestID = firstNonEmpty(msg.RequestID, event.RequestID)
		msg.Metadata = event.Metadata
		msg.Data = event.Data
	}

	if msg.RequestID == "" {
		msg.RequestID = uuid.NewString()
	}
	return msg
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
