package routes

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/access"
	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/api/middleware"
	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/handlers"
	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/utils/logger"
)

func SetupUploadRoutes(api *echo.Group, db *gorm.DB, auth *middleware.AuthMiddleware) {
	log := logger.New("upload_routes")

	mediaHandler := handlers.NewMediaHandler(db)

	media := api.Group("/admin/media", auth.Require(access.AdminOnly))
	media.POST("", mediaHandler.Upload)
	media.GET("", mediaHandler.List)
	media.DELETE("/:id", mediaHandler.Delete)

	log.Success("Upload routes initialized successfully")
}
