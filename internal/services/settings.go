package services

import (
	"context"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/access"
	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/models"
	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/utils"
	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/utils/crypto"
	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/utils/logger"
)

// SettingsService manages the site settings key/value collection.
// Writes are upserts keyed on section_key, so repeating the same write
// is idempotent and duplicate keys cannot exist.
type SettingsService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{
		db:  db,
		log: logger.New("settings_service"),
	}
}

// Upsert writes one setting value. An existing row for the key is
// replaced in place; last write wins by construction, never via
// duplicate rows.
func (s *SettingsService) Upsert(ctx context.Context, sectionKey string, value datatypes.JSON, secret bool) (*models.SiteSetting, error) {
	setting := models.SiteSetting{
		SectionKey: sectionKey,
		Value:      value,
		Secret:     secret,
	}

	if secret {
		encrypted, err := crypto.Encrypt(string(value))
		if err != nil {
			return nil, s.log.Error("Failed to encrypt secret setting %s", err, sectionKey)
		}
		wrapped, err := utils.MapToJSON(map[string]string{"ciphertext": encrypted})
		if err != nil {
			return nil, s.log.Error("Failed to encode secret setting %s", err, sectionKey)
		}
		setting.Value = wrapped
	}

	// Returning reloads the row after the conflict resolution, so an
	// update keeps the existing row's id and created_at in the response.
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "section_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "secret", "updated_at"}),
	}, clause.Returning{}).Create(&setting).Error
	if err != nil {
		return nil, err
	}

	return &setting, nil
}

// All returns every setting row, newest first.
func (s *SettingsService) All(ctx context.Context) ([]models.SiteSetting, error) {
	var rows []models.SiteSetting
	err := s.db.WithContext(ctx).
		Where("is_deleted = ?", false).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Reveal returns the stored value for one section with secret values
// decrypted. Only reachable behind the superadmin capability.
func (s *SettingsService) Reveal(ctx context.Context, sectionKey string) (datatypes.JSON, error) {
	var row models.SiteSetting
	err := s.db.WithContext(ctx).
		Where("section_key = ? AND is_deleted = ?", sectionKey, false).
		First(&row).Error
	if err != nil {
		return nil, err
	}

	if !row.Secret {
		return row.Value, nil
	}

	fields, err := utils.JSONToMap(row.Value)
	if err != nil {
		return nil, s.log.Error("Failed to decode secret setting %s", err, sectionKey)
	}
	plaintext, err := crypto.Decrypt(fields["ciphertext"])
	if err != nil {
		return nil, s.log.Error("Failed to decrypt secret setting %s", err, sectionKey)
	}
	return datatypes.JSON([]byte(plaintext)), nil
}

// PublicMap folds the non-secret settings into the public wire shape.
func (s *SettingsService) PublicMap(ctx context.Context) (map[string]datatypes.JSON, error) {
	rows, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	return access.FoldSettings(rows, false), nil
}
