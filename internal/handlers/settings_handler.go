package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/access"
	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/api/validator"
	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/services"
	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/utils/logger"
)

type SettingsHandler struct {
	settings *services.SettingsService
	log      *logger.Logger
}

func NewSettingsHandler(db *gorm.DB) *SettingsHandler {
	return &SettingsHandler{
		settings: services.NewSettingsService(db),
		log:      logger.New("SettingsHandler"),
	}
}

// Public returns the folded non-secret settings map for the site.
// @Summary Get public site settings
// @Tags settings
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /settings [get]
func (h *SettingsHandler) Public(c echo.Context) error {
	folded, err := h.settings.PublicMap(c.Request().Context())
	if err != nil {
		h.log.Error("Failed to load public settings", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load settings"})
	}
	return c.JSON(http.StatusOK, folded)
}

// List returns every setting row, secrets included.
// @Summary List all settings
// @Tags settings
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} access.ListResponse[models.SiteSetting]
// @Router /admin/settings [get]
func (h *SettingsHandler) List(c echo.Context) error {
	rows, err := h.settings.All(c.Request().Context())
	if err != nil {
		h.log.Error("Failed to list settings", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list settings"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"data": access.ShapeList(rows)})
}

// Reveal decrypts and returns one secret setting value.
// @Summary Reveal a secret setting
// @Tags settings
// @Produce json
// @Security ApiKeyAuth
// @Param key path string true "Section key"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "Not found"
// @Router /admin/settings/{key}/reveal [get]
func (h *SettingsHandler) Reveal(c echo.Context) error {
	key := c.Param("key")
	if key == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing key parameter"})
	}

	value, err := h.settings.Reveal(c.Request().Context(), key)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Setting not found"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"sectionKey": key, "value": value})
}

// Upsert writes one setting value, replacing any existing row for the
// section key.
// @Summary Upsert a setting
// @Tags settings
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param setting body validator.SettingUpsertRequest true "Setting payload"
// @Success 200 {object} models.SiteSetting
// @Failure 400 {object} map[string]string "Invalid payload"
// @Router /admin/settings [put]
func (h *SettingsHandler) Upsert(c echo.Context) error {
	var req validator.SettingUpsertRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	encoded, err := json.Marshal(req.Value)
	if err != nil {
		h.log.Error("Failed to encode setting value", err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid setting value"})
	}

	setting, err := h.settings.Upsert(c.Request().Context(), req.SectionKey, datatypes.JSON(encoded), req.Secret)
	if err != nil {
		h.log.Error("Failed to upsert setting %s", err, req.SectionKey)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save setting"})
	}

	return c.JSON(http.StatusOK, setting)
}
