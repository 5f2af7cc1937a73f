package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"safeCast/internal/modules/coercion/domain"
)

const (
	ActionSubscribe   = "subscribe"
	ActionUnsubscribe = "unsubscribe"
	ActionPing        = "ping"
	ActionCoerce      = "coerce"
	ActionClassify    = "classify"
	ActionBatch       = "batch"
)

// maxInflightCommands caps concurrent fallback commands per client.
const maxInflightCommands = 4

var ErrTooManyCommands = errors.New("too many commands in flight")

// Command is a client to server websocket frame.
type Command struct {
	Action    string          `json:"action"`
	RequestID string          `json:"requestId,omitempty"`
	Topic     string          `json:"topic,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

func (c Command) actionKey() string {
	return normalizeAction(c.Action)
}

type CommandHandler func(ctx context.Context, client *Client, cmd Command)

type CommandProcessor struct {
	hub             *Hub
	mu              sync.RWMutex
	handlers        map[string]CommandHandler
	fallback        CommandHandler
	fallbackTimeout time.Duration
	inflight        chan struct{}
}

func NewCommandProcessor(hub *Hub, fallback CommandHandler) *CommandProcessor {
	processor := &CommandProcessor{
		hub:             hub,
		handlers:        make(map[string]CommandHandler),
		fallback:        fallback,
		fallbackTimeout: 10 * time.Second,
		inflight:        make(chan struct{}, maxInflightCommands),
	}
	processor.Register(ActionSubscribe, processor.handleSubscribe)
	processor.Register(ActionUnsubscribe, processor.handleUnsubscribe)
	processor.Register(ActionPing, processor.handlePing)
	return processor
}

func (p *CommandProcessor) Register(action string, handler CommandHandler) {
	if handler == nil {
		return
	}
	key := normalizeAction(action)
	if key == "" {
		return
	}
	p.mu.Lock()
	p.handlers[key] = handler
	p.mu.Unlock()
}

// SetFallbackTimeout bounds how long a fallback command may run.
func (p *CommandProcessor) SetFallbackTimeout(d time.Duration) {
	if d > 0 {
		p.fallbackTimeout = d
	}
}

// Process runs registered handlers inline and the fallback in its own
// goroutine under the fallback timeout. A fallback command arriving while
// maxInflightCommands are still running is rejected with ErrTooManyCommands.
func (p *CommandProcessor) Process(client *Client, cmd Command) {
	if client == nil {
		return
	}

	action := cmd.actionKey()
	if action == "" {
		return
	}

	p.mu.RLock()
	handler, ok := p.handlers[action]
	p.mu.RUnlock()
	if ok {
		handler(context.Background(), client, cmd)
		return
	}

	if p.fallback == nil {
		slog.Debug("ws command ignored", slog.String("sessionId", client.sessionID), slog.String("action", action))
		return
	}

	select {
	case p.inflight <- struct{}{}:
	default:
		slog.Warn("ws command rejected", slog.String("sessionId", client.sessionID), slog.String("action", action))
		client.SendError(cmd.RequestID, ErrTooManyCommands)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.fallbackTimeout)
	go func() {
		defer func() { <-p.inflight }()
		defer cancel()
		p.fallback(ctx, client, cmd)
	}()
}

func (p *CommandProcessor) handleSubscribe(_ context.Context, client *Client, cmd Command) {
	topic := strings.TrimSpace(cmd.Topic)
	if topic == "" {
		slog.Debug("ws subscribe ignored empty topic", slog.String("sessionId", client.sessionID))
		return
	}
	p.hub.subscribe(client, topic)
	slog.Debug("ws subscribe", slog.String("sessionId", client.sessionID), slog.String("topic", topic))
}

func (p *CommandProcessor) handleUnsubscribe(_ context.Context, client *Client, cmd Command) {
	topic := strings.TrimSpace(cmd.Topic)
	if topic == "" {
		return
	}
	p.hub.unsubscribe(client, topic)
}

func (p *CommandProcessor) handlePing(_ context.Context, client *Client, cmd Command) {
	ack := domain.NewSystemMessage(domain.TopicSystemPong, domain.ActionPong, nil, time.Now())
	ack.RequestID = cmd.RequestID
	client.SendDomainMessage(ack)
}

func normalizeAction(action string) string {
	return strings.ToLower(strings.TrimSpace(action))
}
