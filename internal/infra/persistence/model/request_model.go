// Package model contains the GORM-specific structs mirroring the database
// schema. The schema is fixed and versioned; nothing probes for optional
// columns at runtime.
package model

import (
	"time"

	"github.com/google/uuid"
)

// RequestModel is the GORM-specific struct for the 'requests' table.
// The composite unique index on (latitude, longitude) enforces the
// no-duplicate-coordinates rule at the storage layer, closing the
// check-then-insert race an application-level guard would leave open.
type RequestModel struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	RequesterName string     `gorm:"type:varchar(100);not null"`
	Contact       string     `gorm:"type:varchar(255);not null"`
	Category      string     `gorm:"type:varchar(20);not null"`
	Urgency       string     `gorm:"type:varchar(20);not null"`
	Description   string     `gorm:"type:text"`
	Latitude      float64    `gorm:"type:decimal(10,8);not null;uniqueIndex:idx_requests_exact_point"`
	Longitude     float64    `gorm:"type:decimal(11,8);not null;uniqueIndex:idx_requests_exact_point"`
	ImageURL      string     `gorm:"type:text"`
	Status        string     `gorm:"type:varchar(20);not null;default:'pending';index"`
	AssignedTo    *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (RequestModel) TableName() string {
	return "requests"
}
