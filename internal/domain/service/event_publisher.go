package service

import (
	"context"
)

// EscalationEvent is published after a request escalates to emergency and its
// alert fan-out has been persisted. Consumers (dashboards, audit pipelines)
// receive it asynchronously; publishing is fire-and-forget.
type EscalationEvent struct {
	RequestID      string   `json:"request_id"`
	AlertID        string   `json:"alert_id,omitempty"` // Empty when no volunteers were in range.
	Category       string   `json:"category"`
	Urgency        string   `json:"urgency"`
	Latitude       float64  `json:"latitude"`
	Longitude      float64  `json:"longitude"`
	RecipientIDs   []string `json:"recipient_ids"`
	EscalatedAtUTC string   `json:"escalated_at_utc"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishEscalationEvent publishes an escalation event for async processing
	PublishEscalationEvent(ctx context.Context, event *EscalationEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
