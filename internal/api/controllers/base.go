package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/access"
	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/api/middleware"
	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/services"
	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/utils/logger"
)

var log = logger.New("controllers")

// ScopeConfig describes how listings of one resource are scoped and
// filtered. Filters maps query parameters to database columns; only
// listed parameters ever reach the query.
type ScopeConfig struct {
	Resource    string
	OwnerColumn string
	OwnerParam  string
	SearchIn    []string
	Filters     map[string]string
}

// BaseController provides generic CRUD operations for any model,
// always routed through the scoped query builder.
type BaseController[T any] struct {
	service services.BaseService[T]
	scope   ScopeConfig
}

// NewBaseController creates a new base controller
func NewBaseController[T any](service services.BaseService[T], scope ScopeConfig) *BaseController[T] {
	return &BaseController[T]{
		service: service,
		scope:   scope,
	}
}

// parseIncludes parses the include query parameter and returns a slice of relationships to preload
func parseIncludes(ctx echo.Context) []string {
	include := ctx.QueryParam("include")
	if include == "" {
		return nil
	}
	return strings.Split(include, ",")
}

// buildQuery assembles the scoped query for a listing request.
func (c *BaseController[T]) buildQuery(ctx echo.Context) (*access.Query, error) {
	page, _ := strconv.Atoi(ctx.QueryParam("page"))
	limit, _ := strconv.Atoi(ctx.QueryParam("limit"))

	equals := make(map[string]interface{})
	for param, column := range c.scope.Filters {
		if value := ctx.QueryParam(param); value != "" {
			equals[column] = value
		}
	}

	filter := access.ResourceFilter{
		Resource:    c.scope.Resource,
		OwnerColumn: c.scope.OwnerColumn,
		Equals:      equals,
		Search:      ctx.QueryParam("search"),
		SearchIn:    c.scope.SearchIn,
		Page:        page,
		Limit:       limit,
	}
	if c.scope.OwnerParam != "" {
		// Honored for elevated callers only; BuildQuery forces the
		// caller's own id otherwise.
		filter.Owner = ctx.QueryParam(c.scope.OwnerParam)
	}

	return access.BuildQuery(middleware.GetIdentity(ctx), middleware.GetDecision(ctx), filter)
}

// Create handles creation of new entities
func (c *BaseController[T]) Create(ctx echo.Context) error {
	var entity T
	if err := ctx.Bind(&entity); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := ctx.Validate(&entity); err != nil {
		return err
	}

	includes := parseIncludes(ctx)
	if err := c.service.Create(ctx.Request().Context(), &entity, includes...); err != nil {
		log.Error("Failed to create "+c.scope.Resource, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create resource")
	}

	return ctx.JSON(http.StatusCreated, entity)
}

// Get handles retrieval of a single entity
func (c *BaseController[T]) Get(ctx echo.Context) error {
	id := ctx.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing id parameter")
	}
	includes := parseIncludes(ctx)
	entity, err := c.service.Get(ctx.Request().Context(), id, includes...)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, c.scope.Resource+" not found")
	}

	return ctx.JSON(http.StatusOK, entity)
}

// List handles retrieval of multiple entities with pagination and filtering
func (c *BaseController[T]) List(ctx echo.Context) error {
	query, err := c.buildQuery(ctx)
	if err != nil {
		// Only reachable when the capability middleware was skipped;
		// fail closed rather than listing unscoped rows.
		return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
	}

	includes := parseIncludes(ctx)
	entities, total, err := c.service.List(ctx.Request().Context(), query, includes...)
	if err != nil {
		log.Error("Failed to list "+c.scope.Resource, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list resources")
	}

	return ctx.JSON(http.StatusOK, access.NewListResponse(entities, total, query.Offset()/query.Limit()+1, query.Limit()))
}

// Update handles updating an existing entity
func (c *BaseController[T]) Update(ctx echo.Context) error {
	id := ctx.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing id parameter")
	}

	var entity T
	if err := ctx.Bind(&entity); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := ctx.Validate(&entity); err != nil {
		return err
	}

	includes := parseIncludes(ctx)
	if err := c.service.Update(ctx.Request().Context(), id, &entity, includes...); err != nil {
		log.Error("Failed to update "+c.scope.Resource, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update resource")
	}

	return ctx.JSON(http.StatusOK, entity)
}

// Delete handles deletion of an entity
func (c *BaseController[T]) Delete(ctx echo.Context) error {
	id := ctx.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing id parameter")
	}

	if err := c.service.Delete(ctx.Request().Context(), id); err != nil {
		log.Error("Failed to delete "+c.scope.Resource, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete resource")
	}

	return ctx.NoContent(http.StatusNoContent)
}
