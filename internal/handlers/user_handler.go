package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/api/middleware"
	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/api/validator"
	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/models"
	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/utils/logger"
)

type UserHandler struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db, log: logger.New("UserHandler")}
}

// ChangeRole sets a user's role. Superadmins only; a superadmin cannot
// demote themselves, so the system always keeps at least one.
// @Summary Change a user's role
// @Tags users
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "User ID"
// @Param role body validator.RoleChangeRequest true "New role"
// @Success 200 {object} models.User
// @Failure 400 {object} map[string]string "Invalid payload"
// @Failure 404 {object} map[string]string "Not found"
// @Router /admin/users/{id}/role [put]
func (h *UserHandler) ChangeRole(c echo.Context) error {
	var req validator.RoleChangeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	id := c.Param("id")
	identity := middleware.GetIdentity(c)
	if id == identity.ID && models.UserRole(req.Role) != models.UserRoleSuperAdmin {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Cannot change your own role"})
	}

	ctx := c.Request().Context()
	var user models.User
	if err := h.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).First(&user).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "User not found"})
	}

	if err := h.db.WithContext(ctx).Model(&user).
		Update("role", models.UserRole(req.Role)).Error; err != nil {
		h.log.Error("Failed to change role for user %s", err, id)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to change role"})
	}

	h.log.Info("Role of user %s changed to %s by %s", id, req.Role, identity.ID)
	user.Role = models.UserRole(req.Role)
	return c.JSON(http.StatusOK, user)
}
