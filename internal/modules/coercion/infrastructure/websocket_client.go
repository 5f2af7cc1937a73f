package infrastructure

import (
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"safeCast/internal/modules/coercion/domain"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	readLimit  = 1 << 20
)

type Client struct {
	hub        *Hub
	conn       *websocket.Conn
	send       chan []byte
	sessionID  string
	subject    string
	commands   *CommandProcessor
	subscribed map[string]struct{}

	mu     sync.Mutex
	closed bool
}

// NewClient creates a websocket client with a send buffer of buf messages.
// commandFn receives every command the processor has no handler for.
func NewClient(hub *Hub, conn *websocket.Conn, sessionID, subject string, buf int, commandFn CommandHandler) *Client {
	if buf < 1 {
		buf = 1
	}
	client := &Client{
		hub:        hub,
		conn:       conn,
		send:       make(chan []byte, buf),
		sessionID:  strings.TrimSpace(sessionID),
		subject:    strings.TrimSpace(subject),
		subscribed: make(map[string]struct{}),
	}
	client.commands = NewCommandProcessor(hub, commandFn)
	return client
}

func (c *Client) SessionID() string { return c.sessionID }

func (c *Client) Subject() string { return c.subject }

// Commands exposes the processor so callers can register extra actions.
func (c *Client) Commands() *CommandProcessor { return c.commands }

func (c *Client) key() string {
	return c.sessionID
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

// enqueue queues data for the write pump. A full buffer detaches the client.
func (c *Client) enqueue(data []byte) bool {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return false
	}
	select {
	case c.send <- data:
		c.mu.Unlock()
		return true
	default:
		c.mu.Unlock()
	}
	slog.Warn("websocket send buffer full", slog.String("subject", c.subject), slog.String("sessionId", c.sessionID))
	go c.hub.detachClient(c)
	return false
}

func (c *Client) SendDomainMessage(msg *domain.Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("websocket marshal error", slog.Any("error", err))
		return
	}
	c.enqueue(data)
}

// SendError reports err on the system error topic.
func (c *Client) SendError(requestID string, err error) {
	msg := domain.NewSystemMessage(domain.TopicSystemError, domain.ActionError, map[string]string{"error": err.Error()}, time.Now())
	msg.RequestID = requestID
	c.SendDomainMessage(msg)
}

func (c *Client) WritePump() {
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				slog.Warn("websocket write error", slog.Any("error", err))
				return
			}
		case <-ping.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
				slog.Warn("websocket ping error", slog.Any("error", err))
				return
			}
		}
	}
}

func (c *Client) ReadPump() {
	c.conn.SetReadLimit(readLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	defer c.hub.detachClient(c)
	for {
		var cmd Command
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		if err := c.conn.ReadJSON(&cmd); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Warn("websocket read error", slog.String("sessionId", c.sessionID), slog.Any("error", err))
			}
			return
		}
		c.processCommand(cmd)
	}
}

func (c *Client) processCommand(cmd Command) {
	if c.commands == nil {
		return
	}
	c.commands.Process(c, cmd)
}
