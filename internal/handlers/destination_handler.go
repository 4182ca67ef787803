package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/access"
	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/api/middleware"
	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/models"
	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/utils/logger"
)

type DestinationHandler struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDestinationHandler(db *gorm.DB) *DestinationHandler {
	return &DestinationHandler{db: db, log: logger.New("DestinationHandler")}
}

// List returns the public destination catalogue.
// @Summary List destinations
// @Tags destinations
// @Produce json
// @Param category query string false "Category filter"
// @Param search query string false "Free-text search"
// @Success 200 {object} access.ListResponse[models.Destination]
// @Router /destinations [get]
func (h *DestinationHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	equals := make(map[string]interface{})
	if category := c.QueryParam("category"); category != "" {
		equals["category"] = category
	}
	if featured := c.QueryParam("featured"); featured != "" {
		equals["featured"] = featured == "true"
	}

	query, err := access.BuildQuery(middleware.GetIdentity(c), middleware.GetDecision(c), access.ResourceFilter{
		Resource: "destinations",
		Equals:   equals,
		Search:   c.QueryParam("search"),
		SearchIn: []string{"name", "location", "description"},
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
	}

	ctx := c.Request().Context()
	var destinations []models.Destination
	var total int64
	if err := query.Count(h.db.WithContext(ctx).Model(&models.Destination{})).Count(&total).Error; err != nil {
		h.log.Error("Failed to count destinations", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list destinations"})
	}
	if err := query.Apply(h.db.WithContext(ctx).Model(&models.Destination{})).
		Preload("Cover").Find(&destinations).Error; err != nil {
		h.log.Error("Failed to list destinations", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list destinations"})
	}

	return c.JSON(http.StatusOK, access.NewListResponse(destinations, total, query.Offset()/query.Limit()+1, query.Limit()))
}

// Get returns one destination by slug or id.
// @Summary Get a destination
// @Tags destinations
// @Produce json
// @Param slug path string true "Destination slug or ID"
// @Success 200 {object} models.Destination
// @Failure 404 {object} map[string]string "Not found"
// @Router /destinations/{slug} [get]
func (h *DestinationHandler) Get(c echo.Context) error {
	slug := c.Param("slug")
	if slug == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing slug parameter"})
	}

	var destination models.Destination
	err := h.db.WithContext(c.Request().Context()).
		Preload("Cover").
		Preload("Gallery").
		Where("slug = ? AND is_deleted = ?", slug, false).
		First(&destination).Error
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Destination not found"})
	}

	return c.JSON(http.StatusOK, destination)
}
