package access

import (
	"gorm.io/datatypes"

	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/models"
)

// ShapeList guarantees list responses serialize to [] and never null.
func ShapeList[T any](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}

// ListResponse is the wire shape for paginated listings.
type ListResponse[T any] struct {
	Data  []T   `json:"data"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

// NewListResponse shapes rows plus pagination metadata.
func NewListResponse[T any](rows []T, total int64, page, limit int) ListResponse[T] {
	return ListResponse[T]{
		Data:  ShapeList(rows),
		Total: total,
		Page:  page,
		Limit: limit,
	}
}

// FoldSettings flattens setting rows into one value per section key.
// Duplicate keys cannot persist (unique index on section_key), but if
// the store ever returns them the later row wins. Secret sections are
// skipped unless includeSecrets is set.
func FoldSettings(rows []models.SiteSetting, includeSecrets bool) map[string]datatypes.JSON {
	folded := make(map[string]datatypes.JSON, len(rows))
	for _, row := range rows {
		if row.Secret && !includeSecrets {
			continue
		}
		folded[row.SectionKey] = row.Value
	}
	return folded
}
