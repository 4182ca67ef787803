package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/access"
	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/api/middleware"
	apivalidator "github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/api/validator"
	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/models"
	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/utils/logger"
)

type BookingHandler struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBookingHandler(db *gorm.DB) *BookingHandler {
	return &BookingHandler{db: db, log: logger.New("BookingHandler")}
}

// Create places a booking for the signed-in customer. The owner is
// always the caller; a userId in the body is ignored.
// @Summary Create a booking
// @Tags bookings
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body validator.BookingRequest true "Booking details"
// @Success 201 {object} models.Booking
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Destination not found"
// @Router /bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	identity := middleware.GetIdentity(c)

	var req apivalidator.BookingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	var destination models.Destination
	if err := h.db.WithContext(c.Request().Context()).
		Where("id = ? AND is_deleted = ?", req.DestinationID, false).First(&destination).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Destination not found"})
	}

	booking := models.Booking{
		UserID:        identity.ID,
		DestinationID: destination.ID,
		Status:        models.BookingStatusPending,
		VisitDate:     req.VisitDate,
		PartySize:     req.PartySize,
		TotalAmount:   destination.PricePerPax * int64(req.PartySize),
		ContactName:   req.ContactName,
		ContactEmail:  req.ContactEmail,
		ContactPhone:  req.ContactPhone,
		Notes:         req.Notes,
	}
	if err := h.db.WithContext(c.Request().Context()).Create(&booking).Error; err != nil {
		h.log.Error("Failed to create booking", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create booking"})
	}

	return c.JSON(http.StatusCreated, booking)
}

// List returns the caller's own bookings, newest first. The status
// filter is honored; any user_id parameter is overridden by the
// caller's identity.
// @Summary List own bookings
// @Tags bookings
// @Produce json
// @Security ApiKeyAuth
// @Param status query string false "Booking status filter"
// @Success 200 {object} access.ListResponse[models.Booking]
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /bookings [get]
func (h *BookingHandler) List(c echo.Context) error {
	identity := middleware.GetIdentity(c)
	decision := middleware.GetDecision(c)

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	equals := make(map[string]interface{})
	if status := c.QueryParam("status"); status != "" {
		equals["status"] = status
	}

	query, err := access.BuildQuery(identity, decision, access.ResourceFilter{
		Resource:    "bookings",
		OwnerColumn: "user_id",
		Owner:       c.QueryParam("user_id"),
		Equals:      equals,
		Page:        page,
		Limit:       limit,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
	}

	var bookings []models.Booking
	var total int64
	ctx := c.Request().Context()
	if err := query.Count(h.db.WithContext(ctx).Model(&models.Booking{})).Count(&total).Error; err != nil {
		h.log.Error("Failed to count bookings", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list bookings"})
	}
	if err := query.Apply(h.db.WithContext(ctx).Model(&models.Booking{})).
		Preload("Destination").Find(&bookings).Error; err != nil {
		h.log.Error("Failed to list bookings", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list bookings"})
	}

	return c.JSON(http.StatusOK, access.NewListResponse(bookings, total, query.Offset()/query.Limit()+1, query.Limit()))
}

// Get returns one booking. Non-elevated callers only ever see their own.
// @Summary Get a booking
// @Tags bookings
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} models.Booking
// @Failure 404 {object} map[string]string "Not found"
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c echo.Context) error {
	identity := middleware.GetIdentity(c)
	id := c.Param("id")

	stmt := h.db.WithContext(c.Request().Context()).
		Preload("Destination").
		Where("id = ? AND is_deleted = ?", id, false)
	if !identity.Elevated() {
		stmt = stmt.Where("user_id = ?", identity.ID)
	}

	var booking models.Booking
	if err := stmt.First(&booking).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Booking not found"})
	}

	return c.JSON(http.StatusOK, booking)
}

// Cancel sets the caller's own booking to cancelled. Completed
// bookings cannot be cancelled.
// @Summary Cancel a booking
// @Tags bookings
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} models.Booking
// @Failure 404 {object} map[string]string "Not found"
// @Failure 400 {object} map[string]string "Not cancellable"
// @Router /bookings/{id}/cancel [put]
func (h *BookingHandler) Cancel(c echo.Context) error {
	identity := middleware.GetIdentity(c)
	id := c.Param("id")

	var booking models.Booking
	if err := h.db.WithContext(c.Request().Context()).
		Where("id = ? AND user_id = ? AND is_deleted = ?", id, identity.ID, false).
		First(&booking).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Booking not found"})
	}

	if booking.Status == models.BookingStatusCompleted {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Completed bookings cannot be cancelled"})
	}

	if err := h.db.WithContext(c.Request().Context()).
		Model(&booking).Update("status", models.BookingStatusCancelled).Error; err != nil {
		h.log.Error("Failed to cancel booking", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to cancel booking"})
	}

	booking.Status = models.BookingStatusCancelled
	return c.JSON(http.StatusOK, booking)
}

// UpdateStatus lets an admin move a booking through its lifecycle.
// @Summary Update booking status
// @Tags bookings
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Booking ID"
// @Param request body validator.BookingStatusRequest true "New status"
// @Success 200 {object} models.Booking
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Not found"
// @Router /admin/bookings/{id}/status [put]
func (h *BookingHandler) UpdateStatus(c echo.Context) error {
	id := c.Param("id")

	var req apivalidator.BookingStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	var booking models.Booking
	if err := h.db.WithContext(c.Request().Context()).
		Where("id = ? AND is_deleted = ?", id, false).First(&booking).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Booking not found"})
	}

	if err := h.db.WithContext(c.Request().Context()).
		Model(&booking).Update("status", models.BookingStatus(req.Status)).Error; err != nil {
		h.log.Error("Failed to update booking status", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update booking"})
	}

	booking.Status = models.BookingStatus(req.Status)
	return c.JSON(http.StatusOK, booking)
}
