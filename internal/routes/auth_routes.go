package routes

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/access"
	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/api/middleware"
	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/handlers"
)

func SetupAuthRoutes(api *echo.Group, db *gorm.DB, auth *middleware.AuthMiddleware) {
	authHandler := handlers.NewAuthHandler(db)

	// Public auth routes
	authGroup := api.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/refresh", authHandler.RefreshToken)
	authGroup.POST("/password-reset", authHandler.RequestPasswordReset)
	authGroup.POST("/password-reset/verify", authHandler.VerifyResetCode)

	// Routes about the caller's own account
	users := api.Group("/users", auth.Require(access.AuthenticatedSelf))
	users.GET("/me", authHandler.GetMe)
	users.PUT("/me", authHandler.UpdateMe)
}
