package models

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"

	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/config"
	console "github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/utils/logger"

	"gorm.io/gorm"
)

var log = console.New("SEEDER")

// Default site settings created on first boot. Values are plain JSON
// documents keyed by section; the admin console edits them in place.
var defaultSettings = []SiteSetting{
	{SectionKey: "site.general", Value: datatypes.JSON([]byte(`{"title":"Curug Mara","tagline":"Hidden waterfall escapes"}`))},
	{SectionKey: "site.contact", Value: datatypes.JSON([]byte(`{"email":"hello@curugmara.id","phone":"","address":""}`))},
	{SectionKey: "site.social", Value: datatypes.JSON([]byte(`{"instagram":"","facebook":"","whatsapp":""}`))},
	{SectionKey: "booking.policy", Value: datatypes.JSON([]byte(`{"minPartySize":1,"maxPartySize":50,"leadDays":1}`))},
}

// SeedDefaultSettings creates the default site settings if missing.
// Existing rows are never overwritten by the seeder.
func SeedDefaultSettings(db *gorm.DB) error {
	for _, setting := range defaultSettings {
		if err := db.Where(SiteSetting{SectionKey: setting.SectionKey}).
			Attrs(SiteSetting{Value: setting.Value}).
			FirstOrCreate(&SiteSetting{}).Error; err != nil {
			return fmt.Errorf("failed to seed setting %s: %v", setting.SectionKey, err)
		}
	}
	return nil
}

// CreateSuperAdminFromEnv creates the initial superadmin account from
// SUPERADMIN_EMAIL / SUPERADMIN_PASSWORD if no superadmin exists yet.
func CreateSuperAdminFromEnv(db *gorm.DB, cfg *config.Config) error {
	email := os.Getenv("SUPERADMIN_EMAIL")
	password := os.Getenv("SUPERADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Warn("SUPERADMIN_EMAIL or SUPERADMIN_PASSWORD not set, skipping superadmin creation")
		return nil
	}

	var count int64
	if err := db.Model(&User{}).Where("role = ?", UserRoleSuperAdmin).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count superadmins: %v", err)
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash superadmin password: %v", err)
	}

	user := User{
		Email:     email,
		Password:  string(hashed),
		FirstName: "Super",
		LastName:  "Admin",
		Role:      UserRoleSuperAdmin,
	}
	if err := db.Create(&user).Error; err != nil {
		return fmt.Errorf("failed to create superadmin: %v", err)
	}

	log.Success("Created superadmin %s", email)
	return nil
}
