package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/access"
	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/api/middleware"
	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/models"
	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/utils/logger"
)

// maxUploadSize caps multipart uploads at 32 MB.
const maxUploadSize = 32 << 20

type MediaHandler struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMediaHandler(db *gorm.DB) *MediaHandler {
	return &MediaHandler{db: db, log: logger.New("MediaHandler")}
}

// Upload stores a multipart file in the bucket and records it.
// @Summary Upload a media asset
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "File to upload"
// @Success 201 {object} models.MediaAsset
// @Failure 400 {object} map[string]string "Invalid upload"
// @Router /admin/media [post]
func (h *MediaHandler) Upload(c echo.Context) error {
	storage := GetStorageHandler()
	if storage == nil {
		h.log.Warn("Upload requested but no storage handler is registered")
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "Storage is not available"})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing file"})
	}
	if fileHeader.Size > maxUploadSize {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "File is too large"})
	}

	src, err := fileHeader.Open()
	if err != nil {
		h.log.Error("Failed to open uploaded file", err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid upload"})
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxUploadSize+1))
	if err != nil {
		h.log.Error("Failed to read uploaded file", err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid upload"})
	}
	if int64(len(data)) > maxUploadSize {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "File is too large"})
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	ctx := c.Request().Context()
	key, err := storage.UploadFile(ctx, data, fileHeader.Filename, types.ObjectCannedACLPrivate, contentType)
	if err != nil {
		h.log.Error("Failed to upload file to storage", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to upload file"})
	}

	asset := models.MediaAsset{
		Key:         key,
		Name:        fileHeader.Filename,
		Size:        int64(len(data)),
		ContentType: contentType,
		UploaderID:  middleware.GetIdentity(c).ID,
	}
	if destinationID := c.FormValue("destinationId"); destinationID != "" {
		asset.DestinationID = destinationID
	}

	if err := h.db.WithContext(ctx).Create(&asset).Error; err != nil {
		h.log.Error("Failed to record media asset, removing orphaned object", err)
		// Best effort; the reconcile task sweeps anything left behind.
		if delErr := storage.DeleteFile(ctx, key); delErr != nil {
			h.log.Error("Failed to remove orphaned object", delErr)
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save media asset"})
	}

	return c.JSON(http.StatusCreated, asset)
}

// List returns recorded media assets, newest first.
// @Summary List media assets
// @Tags media
// @Produce json
// @Security ApiKeyAuth
// @Param search query string false "Free-text search"
// @Success 200 {object} access.ListResponse[models.MediaAsset]
// @Router /admin/media [get]
func (h *MediaHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	query, err := access.BuildQuery(middleware.GetIdentity(c), middleware.GetDecision(c), access.ResourceFilter{
		Resource: "media_assets",
		Search:   c.QueryParam("search"),
		SearchIn: []string{"name", "key", "content_type"},
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
	}

	ctx := c.Request().Context()
	var assets []models.MediaAsset
	var total int64
	if err := query.Count(h.db.WithContext(ctx).Model(&models.MediaAsset{})).Count(&total).Error; err != nil {
		h.log.Error("Failed to count media assets", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list media assets"})
	}
	if err := query.Apply(h.db.WithContext(ctx).Model(&models.MediaAsset{})).Find(&assets).Error; err != nil {
		h.log.Error("Failed to list media assets", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list media assets"})
	}

	return c.JSON(http.StatusOK, access.NewListResponse(assets, total, query.Offset()/query.Limit()+1, query.Limit()))
}

// Delete removes an asset from storage first and the record second.
// If the record is already gone the storage delete still runs and the
// call reports success, so retries converge instead of erroring.
// @Summary Delete a media asset
// @Tags media
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Asset ID or object key"
// @Success 200 {object} map[string]string "Deleted"
// @Router /admin/media/{id} [delete]
func (h *MediaHandler) Delete(c echo.Context) error {
	storage := GetStorageHandler()
	if storage == nil {
		h.log.Warn("Delete requested but no storage handler is registered")
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "Storage is not available"})
	}

	id := c.Param("id")
	ctx := c.Request().Context()

	key := id
	var asset *models.MediaAsset
	if _, err := uuid.Parse(id); err == nil {
		asset, _ = models.GetMediaAssetByID(id, h.db.WithContext(ctx))
	} else {
		var byKey models.MediaAsset
		if h.db.WithContext(ctx).Where("key = ? AND is_deleted = ?", id, false).First(&byKey).Error == nil {
			asset = &byKey
		}
	}
	if asset != nil {
		key = asset.Key
	}

	// Storage first. A failed object delete keeps the record so the
	// asset stays visible and the delete can be retried.
	if err := storage.DeleteFile(ctx, key); err != nil {
		h.log.Error("Failed to delete object from storage", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete media asset"})
	}

	if asset != nil {
		if err := h.db.WithContext(ctx).Delete(asset).Error; err != nil {
			h.log.Error("Failed to delete media asset record", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete media asset"})
		}
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Media asset deleted"})
}
