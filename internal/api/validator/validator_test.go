package validator

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactMessageRequest(t *testing.T) {
	v := NewValidator()
	require.NotNil(t, v)

	valid := ContactMessageRequest{
		Name:    "Ayu",
		Email:   "ayu@example.com",
		Subject: "Group visit",
		Message: "Do you have guides for groups of 20?",
	}
	assert.NoError(t, v.Validate(valid))

	invalid := valid
	invalid.Email = "not-an-email"
	err := v.Validate(invalid)
	require.Error(t, err)

	var ve ValidationErrors
	require.True(t, errors.As(err, &ve))
	require.Len(t, ve, 1)
	assert.Equal(t, "email", ve[0].Field(), "errors must report json field names")
	assert.Equal(t, "email", ve[0].Tag())
}

func TestBookingRequestRejectsPastVisitDate(t *testing.T) {
	v := NewValidator()

	req := BookingRequest{
		DestinationID: "7ad1a21e-95cf-46c5-9fbb-8e22b1e2e001",
		VisitDate:     time.Now().Add(-24 * time.Hour),
		PartySize:     4,
		ContactName:   "Ayu",
		ContactEmail:  "ayu@example.com",
	}
	assert.Error(t, v.Validate(req))

	req.VisitDate = time.Now().Add(24 * time.Hour)
	assert.NoError(t, v.Validate(req))
}

func TestBookingRequestPartySizeBounds(t *testing.T) {
	base := BookingRequest{
		DestinationID: "7ad1a21e-95cf-46c5-9fbb-8e22b1e2e001",
		VisitDate:     time.Now().Add(24 * time.Hour),
		ContactName:   "Ayu",
		ContactEmail:  "ayu@example.com",
	}
	v := NewValidator()

	for size, wantOK := range map[int]bool{0: false, 1: true, 50: true, 51: false} {
		req := base
		req.PartySize = size
		err := v.Validate(req)
		if wantOK {
			assert.NoError(t, err, "party size %d", size)
		} else {
			assert.Error(t, err, "party size %d", size)
		}
	}
}

func TestCustomTagValidators(t *testing.T) {
	v := NewValidator()

	for role, wantOK := range map[string]bool{
		"user": true, "admin": true, "superadmin": true,
		"root": false, "": false,
	} {
		err := v.Validate(RoleChangeRequest{Role: role})
		if wantOK {
			assert.NoError(t, err, "role %q", role)
		} else {
			assert.Error(t, err, "role %q", role)
		}
	}

	for status, wantOK := range map[string]bool{
		"pending": true, "confirmed": true, "cancelled": true, "completed": true,
		"archived": false,
	} {
		err := v.Validate(BookingStatusRequest{Status: status})
		if wantOK {
			assert.NoError(t, err, "status %q", status)
		} else {
			assert.Error(t, err, "status %q", status)
		}
	}
}

func TestSettingUpsertRequest(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(SettingUpsertRequest{
		SectionKey: "hero",
		Value:      map[string]interface{}{"title": "Curug Mara"},
	}))

	assert.Error(t, v.Validate(SettingUpsertRequest{
		SectionKey: "x",
		Value:      map[string]interface{}{"title": "too short key"},
	}))

	assert.Error(t, v.Validate(SettingUpsertRequest{SectionKey: "hero"}))
}
