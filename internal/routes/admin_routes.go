package routes

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/access"
	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/api/middleware"
	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/api/registry"
	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/handlers"
)

// SetupAdminRoutes registers the admin console surface under /admin.
// Generic CRUD comes from the registry; the handlers below cover the
// operations with semantics beyond plain CRUD.
func SetupAdminRoutes(api *echo.Group, db *gorm.DB, auth *middleware.AuthMiddleware) {
	admin := api.Group("/admin")

	registry.RegisterAdminCRUDRoutes(admin, db, auth)

	bookingHandler := handlers.NewBookingHandler(db)
	admin.PUT("/bookings/:id/status", bookingHandler.UpdateStatus, auth.Require(access.AdminOnly))

	contactHandler := handlers.NewContactHandler(db)
	admin.PUT("/messages/:id/read", contactHandler.MarkRead, auth.Require(access.AdminOnly))

	postHandler := handlers.NewPostHandler(db)
	admin.PUT("/posts/:id/publish", postHandler.Publish, auth.Require(access.AdminOnly))
	admin.PUT("/posts/:id/unpublish", postHandler.Unpublish, auth.Require(access.AdminOnly))

	settingsHandler := handlers.NewSettingsHandler(db)
	admin.GET("/settings", settingsHandler.List, auth.Require(access.AdminOnly))
	admin.PUT("/settings", settingsHandler.Upsert, auth.Require(access.AdminOnly))
	admin.GET("/settings/:key/reveal", settingsHandler.Reveal, auth.Require(access.SuperadminOnly))

	userHandler := handlers.NewUserHandler(db)
	admin.PUT("/users/:id/role", userHandler.ChangeRole, auth.Require(access.SuperadminOnly))
}
