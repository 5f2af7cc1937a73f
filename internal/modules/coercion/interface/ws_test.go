package transport

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"safeCast/internal/modules/coercion/application/usecase"
	"safeCast/internal/modules/coercion/domain"
	"safeCast/internal/modules/coercion/infrastructure"
	"safeCast/internal/shared/auth"
)

type wsFrame struct {
	Topic     string            `json:"topic"`
	Action    string            `json:"action"`
	RequestID string            `json:"requestId"`
	Metadata  map[string]string `json:"metadata"`
	Data      map[string]any    `json:"data"`
}

func readFrame(t *testing.T, conn *websocket.Conn) wsFrame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var frame wsFrame
	require.NoError(t, conn.ReadJSON(&frame))
	return frame
}

func TestWebsocketRoundTrip(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	hub := infrastructure.NewHub()
	validator, err := auth.NewJWTValidator("", "")
	require.NoError(t, err)
	e := echo.New()
	e.HideBanner = true
	RegisterRoutes(e, Dependencies{
		Hub:            hub,
		CoerceUC:       usecase.NewCoerceUseCase(10, 2),
		Validator:      validator,
		SendBuffer:     8,
		CommandTimeout: 2 * time.Second,
	})
	server := httptest.NewServer(e)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/coerce"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	connected := readFrame(t, conn)
	assert.Equal(t, domain.TopicSystemConnected, connected.Topic)
	sessionID := connected.Metadata["sessionId"]
	require.NotEmpty(t, sessionID)

	require.NoError(t, conn.WriteJSON(map[string]any{"action": "ping", "requestId": "p"}))
	pong := readFrame(t, conn)
	assert.Equal(t, domain.TopicSystemPong, pong.Topic)
	assert.Equal(t, "p", pong.RequestID)

	require.NoError(t, conn.WriteJSON(map[string]any{
		"action":    "coerce",
		"requestId": "c1",
		"payload":   map[string]any{"target": "float", "value": "1e3"},
	}))
	result := readFrame(t, conn)
	assert.Equal(t, "coercion.completed", result.Topic)
	assert.Equal(t, "c1", result.RequestID)
	assert.Equal(t, sessionID, result.Metadata["sessionId"])
	assert.Equal(t, 1000.0, result.Data["value"])

	require.NoError(t, conn.WriteJSON(map[string]any{
		"action":    "classify",
		"requestId": "k1",
		"payload":   map[string]any{"value": []any{1.5, 2.5}},
	}))
	classified := readFrame(t, conn)
	assert.Equal(t, "classification.completed", classified.Topic)
	assert.Equal(t, "float", classified.Data["collection"].(map[string]any)["kind"])

	require.NoError(t, conn.WriteJSON(map[string]any{
		"action":    "batch",
		"requestId": "b1",
		"payload": map[string]any{"items": []any{
			map[string]any{"target": "int", "value": "7"},
			map[string]any{"target": "int", "value": "x"},
		}},
	}))
	batch := readFrame(t, conn)
	assert.Equal(t, "batch.completed", batch.Topic)
	assert.Len(t, batch.Data["results"], 2)

	require.NoError(t, conn.WriteJSON(map[string]any{"action": "explode", "requestId": "z"}))
	failed := readFrame(t, conn)
	assert.Equal(t, domain.TopicSystemError, failed.Topic)
	assert.Equal(t, "z", failed.RequestID)

	hub.Broadcast(context.Background(), &domain.Message{Topic: "coercion.failed", RequestID: "from-kafka"})
	broadcast := readFrame(t, conn)
	assert.Equal(t, "from-kafka", broadcast.RequestID)

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	require.Eventually(t, func() bool {
		return hub.Subscribers("coercion.completed") == 0
	}, 2*time.Second, 10*time.Millisecond)
}
