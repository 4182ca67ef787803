package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	playgroundvalidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// ValidationErrors wraps the validator's ValidationErrors
type ValidationErrors []playgroundvalidator.FieldError

// CustomValidator wraps go-playground/validator
type CustomValidator struct {
	validator *playgroundvalidator.Validate
}

// NewValidator creates a new validator instance
func NewValidator() echo.Validator {
	v := playgroundvalidator.New()

	// Report JSON field names in validation errors
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Register custom validations
	err := v.RegisterValidation("user_role", validateUserRole)
	if err != nil {
		return nil
	}
	err = v.RegisterValidation("booking_status", validateBookingStatus)
	if err != nil {
		return nil
	}
	err = v.RegisterValidation("destination_category", validateDestinationCategory)
	if err != nil {
		return nil
	}

	return &CustomValidator{validator: v}
}

// Custom validation functions
func validateUserRole(fl playgroundvalidator.FieldLevel) bool {
	role := fl.Field().String()
	return role == "user" || role == "admin" || role == "superadmin"
}

func validateBookingStatus(fl playgroundvalidator.FieldLevel) bool {
	status := fl.Field().String()
	return status == "pending" || status == "confirmed" || status == "cancelled" || status == "completed"
}

func validateDestinationCategory(fl playgroundvalidator.FieldLevel) bool {
	category := fl.Field().String()
	validCategories := map[string]bool{
		"waterfall": true,
		"mountain":  true,
		"beach":     true,
		"culture":   true,
		"culinary":  true,
	}
	return validCategories[category]
}

// Validate implements echo.Validator interface
func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		var validationErrors playgroundvalidator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return ValidationErrors(validationErrors)
		}
		return err
	}
	return nil
}

// Error implements the error interface for ValidationErrors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ""
	}
	var fields []string
	for _, err := range ve {
		fields = append(fields, err.Field())
	}
	return fmt.Sprintf("validation failed on fields: %s", strings.Join(fields, ", "))
}

// BookingRequest is the customer-facing booking payload
type BookingRequest struct {
	DestinationID string    `json:"destinationId" validate:"required,uuid"`
	VisitDate     time.Time `json:"visitDate" validate:"required,gt"`
	PartySize     int       `json:"partySize" validate:"required,min=1,max=50"`
	ContactName   string    `json:"contactName" validate:"required"`
	ContactEmail  string    `json:"contactEmail" validate:"required,email"`
	ContactPhone  string    `json:"contactPhone"`
	Notes         string    `json:"notes"`
}

type BookingStatusRequest struct {
	Status string `json:"status" validate:"required,booking_status"`
}

type ContactMessageRequest struct {
	Name    string `json:"name" validate:"required,min=2"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

type SettingUpsertRequest struct {
	SectionKey string                 `json:"sectionKey" validate:"required,min=2"`
	Value      map[string]interface{} `json:"value" validate:"required"`
	Secret     bool                   `json:"secret"`
}

type ProfileUpdateRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

type RoleChangeRequest struct {
	Role string `json:"role" validate:"required,user_role"`
}
