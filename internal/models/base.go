package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base contains common columns for all tables
type Base struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	DeletedAt time.Time `gorm:"index;default:NULL" json:"-" validate:"omitempty"`
	IsDeleted bool      `json:"isDeleted" default:"false"`
}

// BeforeCreate will set a UUID rather than numeric ID
func (base *Base) BeforeCreate(tx *gorm.DB) error {
	if base.ID == "" {
		base.ID = uuid.New().String()
	}
	return nil
}

type UserRole string

const (
	UserRoleSuperAdmin UserRole = "superadmin"
	UserRoleAdmin      UserRole = "admin"
	UserRoleUser       UserRole = "user"
)

// IsValidUserRole checks if a given role is valid
func IsValidUserRole(role UserRole) bool {
	switch role {
	case UserRoleSuperAdmin, UserRoleAdmin, UserRoleUser:
		return true
	default:
		return false
	}
}

// Elevated reports whether the role may read rows it does not own.
func (r UserRole) Elevated() bool {
	return r == UserRoleAdmin || r == UserRoleSuperAdmin
}

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

type DestinationCategory string

const (
	CategoryWaterfall DestinationCategory = "waterfall"
	CategoryMountain  DestinationCategory = "mountain"
	CategoryBeach     DestinationCategory = "beach"
	CategoryCulture   DestinationCategory = "culture"
	CategoryCulinary  DestinationCategory = "culinary"
)
