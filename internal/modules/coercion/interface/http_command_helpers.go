package transport

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"safeCast/internal/modules/coercion/application/usecase"
	"safeCast/internal/modules/coercion/domain"
	"safeCast/internal/modules/coercion/infrastructure"
	"safeCast/internal/shared/normalization"
)

// newCoercionCommandHandler serves the coerce, classify and batch websocket
// actions. Results go back to the issuing client only.
func newCoercionCommandHandler(coerceUC *usecase.CoerceUseCase) infrastructure.CommandHandler {
	return func(ctx context.Context, client *infrastructure.Client, cmd infrastructure.Command) {
		action := strings.ToLower(strings.TrimSpace(cmd.Action))
		meta := map[string]string{"sessionId": client.SessionID()}

		switch action {
		case infrastructure.ActionCoerce:
			var payload domain.CoerceCommand
			if err := normalization.DecodeJSONInto(cmd.Payload, &payload); err != nil {
				client.SendError(cmd.RequestID, err)
				return
			}
			if payload.RequestID == "" {
				payload.RequestID = cmd.RequestID
			}
			result, _ := coerceUC.ExecuteCommand(ctx, payload)
			client.SendDomainMessage(domain.NewResultMessage(result, meta, time.Now()))

		case infrastructure.ActionClassify:
			var payload valueRequest
			if err := normalization.DecodeJSONInto(cmd.Payload, &payload); err != nil {
				client.SendError(cmd.RequestID, err)
				return
			}
			result, _ := coerceUC.ExecuteCommand(ctx, domain.CoerceCommand{
				RequestID: cmd.RequestID,
				Target:    domain.TargetCollection.String(),
				Value:     payload.Value,
			})
			client.SendDomainMessage(domain.NewResultMessage(result, meta, time.Now()))

		case infrastructure.ActionBatch:
			var payload domain.BatchCommand
			if err := normalization.DecodeJSONInto(cmd.Payload, &payload); err != nil {
				client.SendError(cmd.RequestID, err)
				return
			}
			results, err := coerceUC.ExecuteBatch(ctx, payload.Items)
			if err != nil {
				slog.Warn("ws batch rejected", slog.String("subject", client.Subject()), slog.String("sessionId", client.SessionID()), slog.Any("error", err))
				client.SendError(cmd.RequestID, err)
				return
			}
			msg := &domain.Message{
				Topic:     domain.CompletedTopic(domain.BatchEntity),
				Action:    domain.ActionCompleted,
				RequestID: cmd.RequestID,
				Metadata:  meta,
				Data:      batchResponse{Results: results},
				Timestamp: time.Now().UTC(),
			}
			client.SendDomainMessage(msg)

		default:
			slog.Debug("ws command unsupported", slog.String("subject", client.Subject()), slog.String("sessionId", client.SessionID()), slog.String("action", cmd.Action))
			client.SendError(cmd.RequestID, fmt.Errorf("unsupported action %q", cmd.Action))
		}
	}
}
