package routes

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/access"
	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/api/middleware"
	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/handlers"
)

// SetupBookingRoutes registers the customer booking surface. Every
// route requires an authenticated caller; row scoping to the caller's
// own bookings happens at query-build time.
func SetupBookingRoutes(api *echo.Group, db *gorm.DB, auth *middleware.AuthMiddleware) {
	bookingHandler := handlers.NewBookingHandler(db)

	bookings := api.Group("/bookings", auth.Require(access.AuthenticatedSelf))
	bookings.POST("", bookingHandler.Create)
	bookings.GET("", bookingHandler.List)
	bookings.GET("/:id", bookingHandler.Get)
	bookings.PUT("/:id/cancel", bookingHandler.Cancel)
}
