package api

import (
	"net/http"

	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/access"
	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/api/middleware"
	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/routes"

	_ "github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/docs/swagger"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func (s *Server) registerRoutes() {
	s.echo.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Curug Mara API")
	})
	// Health check
	// @Summary Health check
	// @Description Check if the server is running
	// @Accept json
	// @Produce json
	// @Success 200 {object} map[string]string "OK"
	// @Router /health [get]
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/swagger/*", echoSwagger.WrapHandler)

	// API v1 group. Identity resolution runs on every request and
	// never rejects; capability checks are attached per route group.
	api := s.echo.Group("/api/v1")

	resolver := access.NewResolver(s.config.JWT.Secret, access.NewGormTransactionStore(s.db))
	evaluator := access.NewEvaluator(access.NewGormProfileStore(s.db))
	auth := middleware.NewAuthMiddleware(resolver, evaluator)
	api.Use(auth.ResolveIdentity())

	routes.SetupPublicRoutes(api, s.db, auth)
	routes.SetupAuthRoutes(api, s.db, auth)
	routes.SetupBookingRoutes(api, s.db, auth)
	routes.SetupAdminRoutes(api, s.db, auth)
	routes.SetupUploadRoutes(api, s.db, auth)
}
