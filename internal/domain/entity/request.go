// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a help request. Stored lowercase;
// comparisons are case-insensitive everywhere.
type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusCompleted Status = "completed"
	StatusEmergency Status = "emergency"
)

// ParseStatus normalizes a raw status string to its canonical lowercase form.
// The second return value reports whether the input named a known status.
func ParseStatus(raw string) (Status, bool) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	switch s {
	case StatusPending, StatusAccepted, StatusCompleted, StatusEmergency:
		return s, true
	}

	return "", false
}

// Is compares two statuses case-insensitively.
func (s Status) Is(other Status) bool {
	return strings.EqualFold(string(s), string(other))
}

// Category classifies what kind of help a request is asking for.
type Category string

const (
	CategoryMedical  Category = "medical"
	CategoryRescue   Category = "rescue"
	CategorySupplies Category = "supplies"
	CategoryShelter  Category = "shelter"
	CategoryOther    Category = "other"
)

// Urgency grades how time-critical a request is.
type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyMedium   Urgency = "medium"
	UrgencyHigh     Urgency = "high"
	UrgencyCritical Urgency = "critical"
)

// Request represents a single plea for help, from submission through
// assignment and completion or emergency escalation.
//
// Status and AssignedTo are the only mutable fields; they change together:
// AssignedTo is non-nil exactly when the status has left pending.
type Request struct {
	ID            uuid.UUID  `json:"id"`             // The Global Unique Identifier (GUID) for the request.
	RequesterName string     `json:"requester_name"` // Display name of the person asking for help.
	Contact       string     `json:"contact"`        // Phone number or email used for completion notice.
	Category      Category   `json:"category"`       // What kind of help is needed.
	Urgency       Urgency    `json:"urgency"`        // How time-critical the request is.
	Description   string     `json:"description"`    // Optional free-text detail.
	Latitude      float64    `json:"latitude"`       // Geographic latitude of the incident, [-90, 90].
	Longitude     float64    `json:"longitude"`      // Geographic longitude of the incident, [-180, 180].
	ImageURL      string     `json:"image_url"`      // Optional reference to an uploaded photo.
	Status        Status     `json:"status"`         // Current lifecycle state.
	AssignedTo    *uuid.UUID `json:"assigned_to"`    // The volunteer who claimed the request, nil while pending.
	CreatedAt     time.Time  `json:"created_at"`     // Timestamp of submission.
	UpdatedAt     time.Time  `json:"updated_at"`     // Timestamp of the last lifecycle transition.
}

// IsAssignedTo reports whether the request is currently owned by the volunteer.
func (r *Request) IsAssignedTo(volunteerID uuid.UUID) bool {
	return r.AssignedTo != nil && *r.AssignedTo == volunteerID
}
