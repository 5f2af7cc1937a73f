package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"safeCast/internal/modules/coercion/application/port"
	"safeCast/internal/modules/coercion/domain"
)

// ErrNoBrokers is returned when a publisher is built without brokers.
var ErrNoBrokers = errors.New("no kafka brokers configured")

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes result messages to a kafka topic keyed by request id.
type KafkaPublisher struct {
	writer messageWriter
	topic  string
}

func NewKafkaPublisher(brokers []string, topic string) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, ErrNoBrokers
	}
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, fmt.Errorf("kafka publisher: empty topic")
	}
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
	}
	return &KafkaPublisher{writer: writer, topic: topic}, nil
}

func (p *KafkaPublisher) Publish(ctx context.Context, msg *domain.Message) error {
	if msg == nil {
		return nil
	}
	value, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode result message: %w", err)
	}
	record := kafka.Message{
		Key:   []byte(msg.RequestID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "topic", Value: []byte(msg.Topic)},
			{Key: "action", Value: []byte(msg.Action)},
		},
		Time: msg.Timestamp,
	}
	if err := p.writer.WriteMessages(ctx, record); err != nil {
		slog.Warn("kafka publish error", slog.String("topic", p.topic), slog.String("requestId", msg.RequestID), slog.Any("error", err))
		return fmt.Errorf("kafka publish: %w", err)
	}
	slog.Debug("kafka result published", slog.String("topic", p.topic), slog.String("requestId", msg.RequestID), slog.String("resultTopic", msg.Topic))
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

var _ port.ResultPublisher = (*KafkaPublisher)(nil)
