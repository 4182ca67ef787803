package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Destination struct {
	Base
	Name        string              `gorm:"not null" json:"name" validate:"required,min=2"`
	Slug        string              `gorm:"uniqueIndex;not null" json:"slug" validate:"required"`
	Category    DestinationCategory `gorm:"not null;default:'waterfall'" json:"category" validate:"required,destination_category"`
	Description string              `gorm:"type:text" json:"description"`
	Location    string              `json:"location"`
	PricePerPax int64               `gorm:"not null;default:0" json:"pricePerPax" validate:"min=0"`
	Featured    bool                `gorm:"default:false" json:"featured"`
	CoverID     string              `gorm:"type:uuid;default:NULL" json:"coverId,omitempty" validate:"omitempty,uuid"`
	Cover       *MediaAsset         `gorm:"foreignKey:CoverID" json:"cover,omitempty"`
	Gallery     []MediaAsset        `gorm:"foreignKey:DestinationID" json:"gallery,omitempty"`
	Bookings    []Booking           `gorm:"foreignKey:DestinationID" json:"bookings,omitempty"`
}

type Booking struct {
	Base
	UserID        string         `gorm:"type:uuid;not null;index" json:"userId" validate:"omitempty,uuid"`
	User          *User          `json:"user,omitempty"`
	DestinationID string         `gorm:"type:uuid;not null" json:"destinationId" validate:"required,uuid"`
	Destination   *Destination   `json:"destination,omitempty"`
	Status        BookingStatus  `gorm:"not null;default:'pending';index" json:"status" validate:"omitempty,booking_status"`
	VisitDate     time.Time      `gorm:"not null" json:"visitDate" validate:"required"`
	PartySize     int            `gorm:"not null;default:1" json:"partySize" validate:"required,min=1,max=50"`
	TotalAmount   int64          `gorm:"not null;default:0" json:"totalAmount"`
	ContactName   string         `gorm:"not null" json:"contactName" validate:"required"`
	ContactEmail  string         `gorm:"not null" json:"contactEmail" validate:"required,email"`
	ContactPhone  string         `json:"contactPhone"`
	Notes         string         `gorm:"type:text" json:"notes"`
	Metadata      datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"`
}

type Post struct {
	Base
	Title       string      `gorm:"not null" json:"title" validate:"required,min=2"`
	Slug        string      `gorm:"uniqueIndex;not null" json:"slug" validate:"required"`
	Excerpt     string      `json:"excerpt"`
	Body        string      `gorm:"type:text" json:"body"`
	Published   bool        `gorm:"default:false;index" json:"published"`
	PublishedAt *time.Time  `json:"publishedAt,omitempty"`
	AuthorID    string      `gorm:"type:uuid;default:NULL" json:"authorId,omitempty" validate:"omitempty,uuid"`
	Author      *User       `json:"author,omitempty"`
	CoverID     string      `gorm:"type:uuid;default:NULL" json:"coverId,omitempty" validate:"omitempty,uuid"`
	Cover       *MediaAsset `gorm:"foreignKey:CoverID" json:"cover,omitempty"`
}

type ContactMessage struct {
	Base
	Name    string `gorm:"not null" json:"name" validate:"required,min=2"`
	Email   string `gorm:"not null" json:"email" validate:"required,email"`
	Subject string `gorm:"not null" json:"subject" validate:"required"`
	Message string `gorm:"type:text;not null" json:"message" validate:"required"`
	Read    bool   `gorm:"default:false;index" json:"read"`
}

type MediaAsset struct {
	Base
	Key           string `gorm:"uniqueIndex;not null" json:"key" validate:"required"`
	Name          string `gorm:"not null" json:"name" validate:"required"`
	Size          int64  `gorm:"not null" json:"size" validate:"required,min=1"`
	ContentType   string `gorm:"not null" json:"contentType" validate:"required"`
	UploaderID    string `gorm:"type:uuid;default:NULL" json:"uploaderId,omitempty" validate:"omitempty,uuid"`
	Uploader      *User  `json:"uploader,omitempty"`
	DestinationID string `gorm:"type:uuid;default:NULL" json:"destinationId,omitempty" validate:"omitempty,uuid"`
	SignedURL     string `gorm:"-" json:"signedUrl,omitempty"` // Virtual field
}

func (m *MediaAsset) AfterFind(tx *gorm.DB) error {
	registryMu.RLock()
	generator := urlGenerator
	registryMu.RUnlock()

	if generator != nil {
		// Generate URL with 1-hour expiry
		url, err := generator.GetSignedURL(tx.Statement.Context, m.Key, time.Hour)
		if err != nil {
			return fmt.Errorf("failed to generate signed URL: %w", err)
		}
		m.SignedURL = url
	}
	return nil
}

// SiteSetting holds one site-configuration value per section key.
// The unique index on SectionKey makes duplicate keys impossible at
// write time; upserts replace the value in place.
type SiteSetting struct {
	Base
	SectionKey string         `gorm:"uniqueIndex;not null" json:"sectionKey" validate:"required,min=2"`
	Value      datatypes.JSON `gorm:"type:jsonb;not null" json:"value" validate:"required"`
	Secret     bool           `gorm:"default:false" json:"secret"`
}

func (s *SiteSetting) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}
