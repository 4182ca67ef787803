package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/access"
	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/api/middleware"
	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/models"
	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/utils/logger"
)

type PostHandler struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostHandler(db *gorm.DB) *PostHandler {
	return &PostHandler{db: db, log: logger.New("PostHandler")}
}

// List returns published blog posts, newest first.
// @Summary List published posts
// @Tags posts
// @Produce json
// @Param search query string false "Free-text search"
// @Success 200 {object} access.ListResponse[models.Post]
// @Router /posts [get]
func (h *PostHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	query, err := access.BuildQuery(middleware.GetIdentity(c), middleware.GetDecision(c), access.ResourceFilter{
		Resource: "posts",
		Equals:   map[string]interface{}{"published": true},
		Search:   c.QueryParam("search"),
		SearchIn: []string{"title", "excerpt"},
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
	}

	ctx := c.Request().Context()
	var posts []models.Post
	var total int64
	if err := query.Count(h.db.WithContext(ctx).Model(&models.Post{})).Count(&total).Error; err != nil {
		h.log.Error("Failed to count posts", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list posts"})
	}
	if err := query.Apply(h.db.WithContext(ctx).Model(&models.Post{})).
		Preload("Cover").Find(&posts).Error; err != nil {
		h.log.Error("Failed to list posts", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list posts"})
	}

	return c.JSON(http.StatusOK, access.NewListResponse(posts, total, query.Offset()/query.Limit()+1, query.Limit()))
}

// Get returns one published post by slug.
// @Summary Get a post
// @Tags posts
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} models.Post
// @Failure 404 {object} map[string]string "Not found"
// @Router /posts/{slug} [get]
func (h *PostHandler) Get(c echo.Context) error {
	slug := c.Param("slug")
	if slug == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing slug parameter"})
	}

	var post models.Post
	err := h.db.WithContext(c.Request().Context()).
		Preload("Cover").
		Where("slug = ? AND published = ? AND is_deleted = ?", slug, true, false).
		First(&post).Error
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Post not found"})
	}

	return c.JSON(http.StatusOK, post)
}

// Publish flips a post to published and stamps the publish time.
// @Summary Publish a post
// @Tags posts
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Post ID"
// @Success 200 {object} models.Post
// @Failure 404 {object} map[string]string "Not found"
// @Router /admin/posts/{id}/publish [put]
func (h *PostHandler) Publish(c echo.Context) error {
	return h.setPublished(c, true)
}

// Unpublish takes a post off the public site.
// @Summary Unpublish a post
// @Tags posts
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Post ID"
// @Success 200 {object} models.Post
// @Failure 404 {object} map[string]string "Not found"
// @Router /admin/posts/{id}/unpublish [put]
func (h *PostHandler) Unpublish(c echo.Context) error {
	return h.setPublished(c, false)
}

func (h *PostHandler) setPublished(c echo.Context, published bool) error {
	id := c.Param("id")

	var post models.Post
	if err := h.db.WithContext(c.Request().Context()).
		Where("id = ? AND is_deleted = ?", id, false).First(&post).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Post not found"})
	}

	updates := map[string]interface{}{"published": published}
	if published {
		now := time.Now()
		updates["published_at"] = &now
	}
	if err := h.db.WithContext(c.Request().Context()).Model(&post).Updates(updates).Error; err != nil {
		h.log.Error("Failed to update post publish state", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update post"})
	}

	post.Published = published
	return c.JSON(http.StatusOK, post)
}
