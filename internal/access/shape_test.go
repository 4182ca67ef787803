package access

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/models"
)

func TestShapeListNeverNull(t *testing.T) {
	var rows []models.Post

	shaped := ShapeList(rows)
	require.NotNil(t, shaped)
	assert.Empty(t, shaped)

	encoded, err := json.Marshal(NewListResponse(rows, 0, 1, 10))
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"data":[]`)
}

func TestShapeListPassesThrough(t *testing.T) {
	rows := []int{3, 1, 2}
	assert.Equal(t, rows, ShapeList(rows))
}

func TestNewListResponse(t *testing.T) {
	resp := NewListResponse([]string{"a", "b"}, 42, 3, 2)
	assert.Equal(t, []string{"a", "b"}, resp.Data)
	assert.Equal(t, int64(42), resp.Total)
	assert.Equal(t, 3, resp.Page)
	assert.Equal(t, 2, resp.Limit)
}

func setting(key string, value string, secret bool) models.SiteSetting {
	return models.SiteSetting{
		SectionKey: key,
		Value:      datatypes.JSON([]byte(value)),
		Secret:     secret,
	}
}

func TestFoldSettingsSkipsSecrets(t *testing.T) {
	rows := []models.SiteSetting{
		setting("hero", `{"title":"Curug Mara"}`, false),
		setting("smtp", `{"ciphertext":"..."}`, true),
	}

	public := FoldSettings(rows, false)
	assert.Len(t, public, 1)
	assert.Contains(t, public, "hero")
	assert.NotContains(t, public, "smtp")

	all := FoldSettings(rows, true)
	assert.Len(t, all, 2)
}

func TestFoldSettingsLastWins(t *testing.T) {
	// Duplicate keys cannot persist, but if the fold ever sees them it
	// still picks exactly one value, the later row.
	rows := []models.SiteSetting{
		setting("hero", `{"v":1}`, false),
		setting("hero", `{"v":2}`, false),
	}

	folded := FoldSettings(rows, false)
	require.Len(t, folded, 1)
	assert.JSONEq(t, `{"v":2}`, string(folded["hero"]))
}
