package port

import (
	"context"

	"safeCast/internal/modules/coercion/domain"
)

// Broadcaster sends messages to websocket clients.
type Broadcaster interface {
	Broadcast(ctx context.Context, msg *domain.Message)
}

// TopicHandler is implemented by handlers registered per kafka topic.
type TopicHandler interface {
	Topic() string
	Handle(ctx context.Context, msg *domain.Message) error
}

// ResultPublisher writes result messages to the outbound result stream.
type ResultPublisher interface {
	Publish(ctx context.Context, msg *domain.Message) error
}
