package routes

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/access"
	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/api/middleware"
	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/handlers"
)

// SetupPublicRoutes registers the anonymous read surface of the site.
// These routes still run the capability check so every listing is
// built from an explicit ALLOW decision, never from an absent one.
func SetupPublicRoutes(api *echo.Group, db *gorm.DB, auth *middleware.AuthMiddleware) {
	destinationHandler := handlers.NewDestinationHandler(db)
	postHandler := handlers.NewPostHandler(db)
	settingsHandler := handlers.NewSettingsHandler(db)
	contactHandler := handlers.NewContactHandler(db)

	public := api.Group("", auth.Require(access.PublicRead))

	public.GET("/destinations", destinationHandler.List)
	public.GET("/destinations/:slug", destinationHandler.Get)

	public.GET("/posts", postHandler.List)
	public.GET("/posts/:slug", postHandler.Get)

	public.GET("/settings", settingsHandler.Public)

	public.POST("/contact", contactHandler.Create)
}
