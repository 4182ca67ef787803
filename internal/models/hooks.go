package models

import (
	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/events"

	"gorm.io/gorm"
)

func (b *Booking) AfterCreate(tx *gorm.DB) error {
	events.Emit("bookings.created", b)
	return nil
}

func (m *ContactMessage) AfterCreate(tx *gorm.DB) error {
	log.Info("Contact message received from %s", m.Email)
	events.Emit("contact_messages.created", m)
	return nil
}

func (u *User) AfterCreate(tx *gorm.DB) error {
	events.Emit("users.created", u)
	return nil
}
