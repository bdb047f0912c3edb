package model

import (
	"time"

	"github.com/google/uuid"
)

// VolunteerModel is the GORM-specific struct for the 'volunteers' table.
// Latitude/Longitude stay NULL until the volunteer first shares a position.
// The proximity query builds a PostGIS geography point from these two columns
// inline, so rows with NULL coordinates never match.
type VolunteerModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name           string    `gorm:"type:varchar(100);not null"`
	Contact        string    `gorm:"type:varchar(255);unique;not null"`
	PasswordHash   string    `gorm:"type:varchar(255);not null"`
	Skills         string    `gorm:"type:text"`
	Certifications string    `gorm:"type:text"` // comma-separated list
	Latitude       *float64  `gorm:"type:decimal(10,8)"`
	Longitude      *float64  `gorm:"type:decimal(11,8)"`
	FCMToken       string    `gorm:"type:text"`
	LastLoginAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (VolunteerModel) TableName() string {
	return "volunteers"
}
