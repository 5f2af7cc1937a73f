package broker

import (
	"context"
	"log/slog"
	"sync"

	"safeCast/internal/modules/coercion/domain"
	"safeCast/internal/modules/coercion/infrastructure"
)

// StartKafkaConsumers starts one consumer per topic and returns a wait
// function that blocks until all of them have stopped.
func StartKafkaConsumers(
	ctx context.Context,
	registry *infrastructure.HandlerRegistry,
	brokers []string,
	groupID string,
	topics []string,
) (wait func()) {
	var wg sync.WaitGroup
	if len(brokers) == 0 {
		// kafka.NewReader panics on an empty broker list.
		slog.Warn("kafka consumers not started: no brokers")
		return wg.Wait
	}
	for _, topic := range topics {
		consumer := NewKafkaConsumer(brokers, groupID, topic)
		wg.Add(1)
		go func() {
			defer wg.Done()
			runConsumer(ctx, consumer, registry, topic)
		}()
	}
	return wg.Wait
}

func runConsumer(ctx context.Context, consumer *KafkaConsumer, registry *infrastructure.HandlerRegistry, topic string) {
	slog.Info("kafka consumer started", slog.String("topic", topic))
	err := consumer.Consume(ctx, func(msg *domain.Message) error {
		return registry.Dispatch(ctx, msg)
	})
	slog.Info("kafka consumer stopped", slog.String("topic", topic), slog.Any("reason", err))
}
