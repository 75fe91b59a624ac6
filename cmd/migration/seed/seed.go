package seed

import (
	"roaddogs/config"
	"roaddogs/internal/logger"
	. "roaddogs/internal/models"
	"roaddogs/internal/services"

	"gorm.io/gorm"
)

// Seed creates the reviewer account from config. Credentials are never
// hardcoded; an empty ADMIN_USERNAME skips seeding.
func Seed(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("Seed")

	if config.AdminUsername == "" || config.AdminPassword == "" {
		log.Info("No admin credentials configured, skipping reviewer seed")
		return nil
	}

	var existing User
	if err := db.First(&existing, "username = ?", config.AdminUsername).Error; err == nil {
		log.Info("Reviewer account already exists", "username", config.AdminUsername)
		return nil
	}

	hash, err := services.HashPassword(config.AdminPassword, config.BcryptCost)
	if err != nil {
		return log.Err("failed to hash admin password", err)
	}

	reviewer := User{
		Username:     config.AdminUsername,
		PasswordHash: hash,
		DisplayName:  config.AdminUsername,
	}

	if err := db.Create(&reviewer).Error; err != nil {
		return log.Err("failed to seed reviewer account", err, "username", config.AdminUsername)
	}

	log.Info("Seeded reviewer account", "username", config.AdminUsername)
	return nil
}
