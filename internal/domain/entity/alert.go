// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Alert is the durable record of one escalation fan-out: the incident origin,
// the human-readable message, and the set of volunteers it was addressed to.
// An alert is written exactly once, always with at least one recipient, and
// is immutable afterwards.
type Alert struct {
	ID           uuid.UUID        `json:"id"`            // The Global Unique Identifier (GUID) for the alert.
	RequestID    uuid.UUID        `json:"request_id"`    // The escalated request this alert belongs to.
	Latitude     float64          `json:"latitude"`      // Origin latitude of the incident.
	Longitude    float64          `json:"longitude"`     // Origin longitude of the incident.
	Message      string           `json:"message"`       // Human-readable alert text sent to recipients.
	OriginatedAt time.Time        `json:"originated_at"` // When the escalation was triggered.
	CreatedAt    time.Time        `json:"created_at"`    // When this record was persisted.
	Recipients   []AlertRecipient `json:"recipients"`    // The volunteers addressed by this alert.
}

// AlertRecipient snapshots one volunteer addressed by an alert. Name and
// contact are denormalized at alert time so the record survives later
// volunteer edits. Rows are created only inside the parent alert's
// transaction and never mutated.
type AlertRecipient struct {
	ID          uuid.UUID `json:"id"`           // The Global Unique Identifier (GUID) for the recipient row.
	AlertID     uuid.UUID `json:"alert_id"`     // The alert this recipient belongs to.
	VolunteerID uuid.UUID `json:"volunteer_id"` // The volunteer addressed.
	Name        string    `json:"name"`         // Volunteer name captured at alert time.
	Contact     string    `json:"contact"`      // Volunteer contact captured at alert time.
}
