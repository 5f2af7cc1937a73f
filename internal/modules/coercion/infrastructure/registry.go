package infrastructure

import (
	"context"
	"log/slog"
	"sync"

	"safeCast/internal/modules/coercion/application/port"
	"safeCast/internal/modules/coercion/domain"
)

type HandlerRegistry struct {
	mu       sync.RWMutex
	handlers map[string]port.TopicHandler
}

func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{handlers: make(map[string]port.TopicHandler)}
}

func (r *HandlerRegistry) Register(h port.TopicHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[h.Topic()] = h
}

// Topics lists the registered topics.
func (r *HandlerRegistry) Topics() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	topics := make([]string, 0, len(r.handlers))
	for topic := range r.handlers {
		topics = append(topics, topic)
	}
	return topics
}

// Dispatch routes msg to the handler of its topic. Unknown topics are ignored.
func (r *HandlerRegistry) Dispatch(ctx context.Context, msg *domain.Message) error {
	r.mu.RLock()
	handler, ok := r.handlers[msg.Topic]
	r.mu.RUnlock()
	if !ok {
		slog.Debug("no handler for topic", slog.String("topic", msg.Topic))
		return nil
	}
	return handler.Handle(ctx, msg)
}
