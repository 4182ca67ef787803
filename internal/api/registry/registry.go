package registry

import (
	"github.com/labstack/echo/v4"

	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/access"
	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/api/controllers"
	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/api/middleware"
	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/models"
	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/services"

	"gorm.io/gorm"
)

// RegisterAdminCRUDRoutes wires the admin console CRUD endpoints. Every
// group is gated by a capability before any controller runs.
func RegisterAdminCRUDRoutes(g *echo.Group, db *gorm.DB, auth *middleware.AuthMiddleware) {
	// Destinations
	destinationService := services.NewBaseService(db, models.Destination{})
	destinationController := controllers.NewBaseController(destinationService, controllers.ScopeConfig{
		Resource: "destinations",
		SearchIn: []string{"name", "location", "description"},
		Filters: map[string]string{
			"category": "category",
			"featured": "featured",
		},
	})
	destinationGroup := g.Group("/destinations")
	destinationGroup.Use(auth.Require(access.AdminOnly))
	destinationGroup.GET("", destinationController.List)
	destinationGroup.GET("/:id", destinationController.Get)
	destinationGroup.POST("", destinationController.Create)
	destinationGroup.PUT("/:id", destinationController.Update)
	destinationGroup.DELETE("/:id", destinationController.Delete)

	// Blog posts
	postService := services.NewBaseService(db, models.Post{})
	postController := controllers.NewBaseController(postService, controllers.ScopeConfig{
		Resource: "posts",
		SearchIn: []string{"title", "excerpt"},
		Filters: map[string]string{
			"published": "published",
		},
	})
	postGroup := g.Group("/posts")
	postGroup.Use(auth.Require(access.AdminOnly))
	postGroup.GET("", postController.List)
	postGroup.GET("/:id", postController.Get)
	postGroup.POST("", postController.Create)
	postGroup.PUT("/:id", postController.Update)
	postGroup.DELETE("/:id", postController.Delete)

	// Contact messages (admin reads and deletes, creation is public)
	messageService := services.NewBaseService(db, models.ContactMessage{})
	messageController := controllers.NewBaseController(messageService, controllers.ScopeConfig{
		Resource: "contact_messages",
		SearchIn: []string{"name", "email", "subject"},
		Filters: map[string]string{
			"read": "read",
		},
	})
	messageGroup := g.Group("/messages")
	messageGroup.Use(auth.Require(access.AdminOnly))
	messageGroup.GET("", messageController.List)
	messageGroup.GET("/:id", messageController.Get)
	messageGroup.DELETE("/:id", messageController.Delete)

	// Bookings, admin view: free filters and customer search, owner
	// filter honored because the capability is elevated.
	bookingService := services.NewBaseService(db, models.Booking{})
	bookingController := controllers.NewBaseController(bookingService, controllers.ScopeConfig{
		Resource:    "bookings",
		OwnerColumn: "user_id",
		OwnerParam:  "user_id",
		SearchIn:    []string{"contact_name", "contact_email"},
		Filters: map[string]string{
			"status":         "status",
			"destination_id": "destination_id",
		},
	})
	bookingGroup := g.Group("/bookings")
	bookingGroup.Use(auth.Require(access.AdminOnly))
	bookingGroup.GET("", bookingController.List)
	bookingGroup.GET("/:id", bookingController.Get)

	// Users (superadmin console)
	userService := services.NewBaseService(db, models.User{})
	userController := controllers.NewBaseController(userService, controllers.ScopeConfig{
		Resource: "users",
		SearchIn: []string{"email", "first_name", "last_name"},
		Filters: map[string]string{
			"role": "role",
		},
	})
	userGroup := g.Group("/users")
	userGroup.Use(auth.Require(access.AdminOrSuperadmin))
	userGroup.GET("", userController.List)
	userGroup.GET("/:id", userController.Get)
}
