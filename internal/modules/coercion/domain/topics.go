package domain

import "strings"

const (
	SystemEntity         = "system"
	CoercionEntity       = "coercion"
	ClassificationEntity = "classification"
	BatchEntity          = "batch"

	TopicSystemConnected = SystemEntity + ".connected"
	TopicSystemPong      = SystemEntity + ".pong"
	TopicSystemError     = SystemEntity + ".error"

	ActionConnected = "connected"
	ActionPong      = "pong"
	ActionError     = "error"
	ActionRequested = "requested"
	ActionCompleted = "completed"
	ActionFailed    = "failed"
)

// CompletedTopic returns the topic announcing a successful result for entity.
func CompletedTopic(entity string) string {
	return buildEntityTopic(entity, ActionCompleted)
}

// FailedTopic returns the topic announcing a coercion failure for entity.
func FailedTopic(entity string) string {
	return buildEntityTopic(entity, ActionFailed)
}

// RequestedTopic returns the topic carrying incoming requests for entity.
func RequestedTopic(entity string) string {
	return buildEntityTopic(entity, ActionRequested)
}

// ResultEntity is the topic entity used for results of target.
func ResultEntity(target Target) string {
	if target == TargetCollection {
		return ClassificationEntity
	}
	return CoercionEntity
}

func buildEntityTopic(entity, action string) string {
	cleanEntity := strings.TrimSpace(entity)
	cleanAction := strings.TrimSpace(action)
	if cleanEntity == "" || cleanAction == "" {
		return ""
	}
	return cleanEntity + "." + cleanAction
}
