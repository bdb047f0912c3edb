package model

import (
	"time"

	"github.com/google/uuid"
)

// AlertModel is the GORM-specific struct for the 'alerts' table. Rows are
// written exactly once, inside the same transaction as their recipients, and
// never updated.
type AlertModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	RequestID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Latitude     float64   `gorm:"type:decimal(10,8);not null"`
	Longitude    float64   `gorm:"type:decimal(11,8);not null"`
	Message      string    `gorm:"type:text;not null"`
	OriginatedAt time.Time
	CreatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (AlertModel) TableName() string {
	return "alerts"
}

// AlertRecipientModel is the GORM-specific struct for the 'alert_recipients'
// table. Name and contact are denormalized from the volunteer at alert time.
type AlertRecipientModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	AlertID     uuid.UUID `gorm:"type:uuid;not null;index"`
	VolunteerID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"type:varchar(100);not null"`
	Contact     string    `gorm:"type:varchar(255);not null"`
}

// TableName explicitly sets the table name for GORM.
func (AlertRecipientModel) TableName() string {
	return "alert_recipients"
}
