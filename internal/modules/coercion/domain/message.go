package domain

import "time"

// Message is the envelope exchanged over kafka and websocket connections.
type Message struct {
	Topic     string            `json:"topic"`
	Action    string            `json:"action"`
	RequestID string            `json:"requestId,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	Data      any               `json:"data,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// NewResultMessage wraps result in the completed or failed topic of its
// entity. metadata is copied.
func NewResultMessage(result Result, metadata map[string]string, now time.Time) *Message {
	entity := ResultEntity(result.Target)
	topic, action := CompletedTopic(entity), ActionCompleted
	if !result.Succeeded() {
		topic, action = FailedTopic(entity), ActionFailed
	}

	meta := make(map[string]string, len(metadata)+1)
	for k, v := range metadata {
		meta[k] = v
	}
	if result.Target != "" {
		meta["target"] = result.Target.String()
	}

	return &Message{
		Topic:     topic,
		Action:    action,
		RequestID: result.RequestID,
		Metadata:  meta,
		Data:      result,
		Timestamp: now.UTC(),
	}
}

// NewSystemMessage builds a message on one of the system topics.
func NewSystemMessage(topic, action string, data any, now time.Time) *Message {
	return &Message{
		Topic:     topic,
		Action:    action,
		Data:      data,
		Timestamp: now.UTC(),
	}
}
