package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"safeCast/internal/modules/coercion/application/port"
	"safeCast/internal/modules/coercion/application/usecase"
	"safeCast/internal/modules/coercion/domain"
	"safeCast/internal/shared/normalization"
)

// ErrUnsupportedData is returned when a message payload is not a coercion command.
var ErrUnsupportedData = errors.New("unsupported message data")

// CoercionRequestedHandler runs coercion requests consumed from kafka,
// publishes the result and broadcasts it to websocket subscribers.
type CoercionRequestedHandler struct {
	topic       string
	coerceUC    *usecase.CoerceUseCase
	broadcastUC *usecase.BroadcastUseCase
	publisher   port.ResultPublisher
	now         func() time.Time
}

// NewCoercionRequestedHandler builds the handler for topic. publisher may be nil.
func NewCoercionRequestedHandler(topic string, coerceUC *usecase.CoerceUseCase, broadcastUC *usecase.BroadcastUseCase, publisher port.ResultPublisher) *CoercionRequestedHandler {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		topic = domain.RequestedTopic(domain.CoercionEntity)
	}
	return &CoercionRequestedHandler{
		topic:       topic,
		coerceUC:    coerceUC,
		broadcastUC: broadcastUC,
		publisher:   publisher,
		now:         time.Now,
	}
}

func (h *CoercionRequestedHandler) Topic() string { return h.topic }

// Handle executes the request carried by msg. Coercion failures are results,
// not handler errors; only undecodable payloads and publish errors are returned.
func (h *CoercionRequestedHandler) Handle(ctx context.Context, msg *domain.Message) error {
	cmd, err := commandFromData(msg.Data)
	if err != nil {
		slog.Warn("coercion request rejected", slog.String("topic", msg.Topic), slog.String("requestId", msg.RequestID), slog.Any("error", err))
		return err
	}
	if cmd.RequestID == "" {
		cmd.RequestID = msg.RequestID
	}

	result, err := h.coerceUC.ExecuteCommand(ctx, cmd)
	if err != nil && result.Failure == nil {
		slog.Debug("coercion request errored", slog.String("requestId", cmd.RequestID), slog.Any("error", err))
	}

	out := domain.NewResultMessage(result, msg.Metadata, h.now())
	if h.broadcastUC != nil {
		h.broadcastUC.Execute(ctx, out)
	}
	if h.publisher != nil {
		if err := h.publisher.Publish(ctx, out); err != nil {
			return fmt.Errorf("publish result %s: %w", cmd.RequestID, err)
		}
	}
	return nil
}

func commandFromData(data any) (domain.CoerceCommand, error) {
	var raw []byte
	switch typed := data.(type) {
	case domain.CoerceCommand:
		return typed, nil
	case *domain.CoerceCommand:
		if typed == nil {
			return domain.CoerceCommand{}, ErrUnsupportedData
		}
		return *typed, nil
	case json.RawMessage:
		raw = typed
	case []byte:
		raw = typed
	case string:
		raw = []byte(typed)
	default:
		return domain.CoerceCommand{}, fmt.Errorf("%w: %T", ErrUnsupportedData, data)
	}

	var cmd domain.CoerceCommand
	if err := normalization.DecodeJSONInto(raw, &cmd); err != nil {
		return domain.CoerceCommand{}, err
	}
	return cmd, nil
}

var _ port.TopicHandler = (*CoercionRequestedHandler)(nil)
