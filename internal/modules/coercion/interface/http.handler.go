package transport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"safeCast/internal/modules/coercion/application/usecase"
	"safeCast/internal/modules/coercion/domain"
	"safeCast/internal/modules/coercion/infrastructure"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// defaultTopics are the result topics every websocket client listens on.
var defaultTopics = []string{
	domain.CompletedTopic(domain.CoercionEntity),
	domain.FailedTopic(domain.CoercionEntity),
	domain.CompletedTopic(domain.ClassificationEntity),
	domain.FailedTopic(domain.ClassificationEntity),
}

var supportedActions = []string{
	infrastructure.ActionCoerce,
	infrastructure.ActionClassify,
	infrastructure.ActionBatch,
	infrastructure.ActionSubscribe,
	infrastructure.ActionUnsubscribe,
	infrastructure.ActionPing,
}

// NewWebsocketHandler upgrades /ws/coerce connections. Authentication runs
// in RequireToken; claims are optional here.
func NewWebsocketHandler(hub *infrastructure.Hub, coerceUC *usecase.CoerceUseCase, sendBuffer int, commandTimeout time.Duration) echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := c.Logger()
		peerIP := c.RealIP()

		subject := ""
		if claims := ClaimsFrom(c); claims != nil {
			subject = claims.Subject
		}

		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			slog.Error("ws handler upgrade failed", slog.String("ip", peerIP), slog.Any("error", err))
			logger.Errorf("ws upgrade failed ip=%s: %v", peerIP, err)
			return err
		}

		sessionID := uuid.NewString()
		client := infrastructure.NewClient(hub, conn, sessionID, subject, sendBuffer, newCoercionCommandHandler(coerceUC))
		client.Commands().SetFallbackTimeout(commandTimeout)
		hub.AttachClient(client, defaultTopics)

		go client.WritePump()
		go client.ReadPump()

		connected := domain.NewSystemMessage(domain.TopicSystemConnected, domain.ActionConnected, map[string]any{
			"sessionId": sessionID,
			"topics":    defaultTopics,
			"actions":   supportedActions,
		}, time.Now())
		connected.Metadata = map[string]string{"sessionId": sessionID}
		client.SendDomainMessage(connected)

		slog.Info("ws connected", slog.String("subject", subject), slog.String("sessionId", sessionID), slog.String("ip", peerIP))
		return nil
	}
}
