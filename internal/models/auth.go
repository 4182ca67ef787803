package models

import (
	"time"
)

type User struct {
	Base
	Email            string      `gorm:"uniqueIndex;not null" json:"email"`
	Password         string      `gorm:"not null" json:"-"`
	FirstName        string      `json:"firstName"`
	LastName         string      `json:"lastName"`
	Phone            string      `json:"phone"`
	Role             UserRole    `gorm:"not null;default:'user'" json:"role"`
	Bookings         []Booking   `gorm:"foreignKey:UserID" json:"bookings,omitempty"`
	ProfilePicture   *MediaAsset `gorm:"foreignKey:ProfilePictureID" json:"profilePicture,omitempty"`
	ProfilePictureID string      `gorm:"type:uuid;default:NULL" json:"profilePictureId,omitempty"`
}

type PasswordReset struct {
	Base
	User      *User     `json:"user,omitempty"`
	UserID    string    `gorm:"type:uuid;not null" json:"userId"`
	Code      string    `gorm:"not null" json:"code"`
	Used      bool      `gorm:"default:false" json:"used"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type AuthTransaction struct {
	Base
	UserID    string    `gorm:"type:uuid;not null" json:"userId"`
	User      *User     `json:"user,omitempty"`
	Token     string    `gorm:"not null" json:"token"`
	Refresh   string    `gorm:"not null" json:"refresh"`
	IPAddress string    `json:"ipAddress"`
	UserAgent string    `json:"userAgent"`
	ExpiresAt time.Time `json:"expiresAt"`
}
