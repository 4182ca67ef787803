package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	apivalidator "github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/api/validator"
	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/models"
	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/utils/logger"
)

type ContactHandler struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContactHandler(db *gorm.DB) *ContactHandler {
	return &ContactHandler{db: db, log: logger.New("ContactHandler")}
}

// Create accepts a public contact-form submission.
// @Summary Submit a contact message
// @Tags contact
// @Accept json
// @Produce json
// @Param request body validator.ContactMessageRequest true "Message"
// @Success 201 {object} map[string]string "Message received"
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /contact [post]
func (h *ContactHandler) Create(c echo.Context) error {
	var req apivalidator.ContactMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": contactValidationMessage(err)})
	}

	message := models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := h.db.WithContext(c.Request().Context()).Create(&message).Error; err != nil {
		h.log.Error("Failed to store contact message", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to submit message"})
	}

	return c.JSON(http.StatusCreated, map[string]string{"message": "Message received"})
}

// MarkRead marks one message as read.
// @Summary Mark a contact message as read
// @Tags contact
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Message ID"
// @Success 200 {object} models.ContactMessage
// @Failure 404 {object} map[string]string "Not found"
// @Router /admin/messages/{id}/read [put]
func (h *ContactHandler) MarkRead(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing id parameter"})
	}

	var message models.ContactMessage
	if err := h.db.WithContext(c.Request().Context()).
		Where("id = ? AND is_deleted = ?", id, false).First(&message).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Message not found"})
	}

	if err := h.db.WithContext(c.Request().Context()).
		Model(&message).Update("read", true).Error; err != nil {
		h.log.Error("Failed to mark message read", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update message"})
	}

	message.Read = true
	return c.JSON(http.StatusOK, message)
}

// contactValidationMessage maps a validation failure to the same field
// messages the web form shows.
func contactValidationMessage(err error) string {
	var ve apivalidator.ValidationErrors
	if !errors.As(err, &ve) {
		return "Invalid request"
	}
	for _, fieldErr := range ve {
		switch {
		case fieldErr.Field() == "email" && fieldErr.Tag() == "email":
			return "Invalid email address"
		case fieldErr.Tag() == "required":
			return fmt.Sprintf("%s is required", fieldErr.Field())
		case fieldErr.Tag() == "min":
			return fmt.Sprintf("%s is too short", fieldErr.Field())
		}
	}
	return "Invalid request"
}
