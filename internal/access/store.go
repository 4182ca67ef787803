package access

import (
	"context"

	"gorm.io/gorm"

	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/models"
)

// GormProfileStore reads authoritative roles from the users table.
type GormProfileStore struct {
	db *gorm.DB
}

func NewGormProfileStore(db *gorm.DB) *GormProfileStore {
	return &GormProfileStore{db: db}
}

func (s *GormProfileStore) Role(ctx context.Context, userID string) (models.UserRole, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Select("role").
		Where("id = ? AND is_deleted = ?", userID, false).
		First(&user).Error
	if err != nil {
		return "", ErrProfileNotFound
	}
	return user.Role, nil
}

// GormTransactionStore verifies tokens against auth_transactions.
type GormTransactionStore struct {
	db *gorm.DB
}

func NewGormTransactionStore(db *gorm.DB) *GormTransactionStore {
	return &GormTransactionStore{db: db}
}

func (s *GormTransactionStore) TokenActive(ctx context.Context, userID, token string) bool {
	var transaction models.AuthTransaction
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND token = ?", userID, token).
		First(&transaction).Error
	return err == nil
}
