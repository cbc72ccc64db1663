package profile

import (
	"gorm.io/gorm"

	"github.com/hackmatehq/hackmate/internal/models"
)

const (
	StatusAvailable = "available"
	StatusBusy      = "busy"
	StatusBreak     = "break"
	StatusOffline   = "offline"
)

// Profile is a hackathon participant. Email or phone may be empty, but at
// least one is set at signup. The secret code is the only credential and is
// stored hashed.
type Profile struct {
	gorm.Model
	DisplayName    string             `gorm:"not null" json:"display_name"`
	Email          string             `gorm:"uniqueIndex:idx_profiles_email,where:email <> ''" json:"email,omitempty"`
	Phone          string             `gorm:"uniqueIndex:idx_profiles_phone,where:phone <> ''" json:"phone,omitempty"`
	SecretCodeHash string             `gorm:"not null" json:"-"`
	Proficiencies  models.StringSlice `gorm:"type:json" json:"proficiencies"`
	Status         string             `gorm:"default:'available'" json:"status"`
}
