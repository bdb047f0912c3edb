// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Volunteer represents a registered field volunteer. Location is nullable:
// it stays absent until the volunteer shares a position for the first time,
// and it is the only field the proximity query ever reads.
type Volunteer struct {
	ID             uuid.UUID  `json:"id"`              // The Global Unique Identifier (GUID) for the volunteer.
	Name           string     `json:"name"`            // The volunteer's display name.
	Contact        string     `json:"contact"`         // Phone number or email used for alert fan-out.
	Skills         string     `json:"skills"`          // Free-text description of what the volunteer can do.
	Certifications []string   `json:"certifications"`  // Optional formal certifications (first aid, rescue, ...).
	Latitude       *float64   `json:"latitude"`        // Last shared latitude, nil until first location share.
	Longitude      *float64   `json:"longitude"`       // Last shared longitude, nil until first location share.
	FCMToken       string     `json:"-"`               // Optional device token for push alerts.
	LastLoginAt    *time.Time `json:"last_login_at"`   // Timestamp of the most recent login.
	CreatedAt      time.Time  `json:"created_at"`      // Timestamp of registration.
	UpdatedAt      time.Time  `json:"updated_at"`      // Timestamp of the last modification.
}

// HasLocation reports whether the volunteer has ever shared a position.
func (v *Volunteer) HasLocation() bool {
	return v.Latitude != nil && v.Longitude != nil
}

// AvailableSince reports whether the volunteer logged in within the window.
// Availability is derived, never settable by clients.
func (v *Volunteer) AvailableSince(window time.Duration, now time.Time) bool {
	if v.LastLoginAt == nil {
		return false
	}

	return now.Sub(*v.LastLoginAt) <= window
}
