package models

import (
	"gorm.io/gorm"
)

// GetUserByEmail retrieves a user from the database by email
func GetUserByEmail(email string, db *gorm.DB) (*User, error) {
	user := &User{}
	if err := db.Where("email = ? AND is_deleted = false", email).First(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func GetMediaAssetByID(id string, db *gorm.DB) (*MediaAsset, error) {
	asset := &MediaAsset{}
	if err := db.Where("id = ? AND is_deleted = false", id).First(asset).Error; err != nil {
		return nil, err
	}
	return asset, nil
}
