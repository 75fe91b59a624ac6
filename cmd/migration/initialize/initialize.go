package initialize

import (
	"roaddogs/config"
	"roaddogs/internal/logger"
	. "roaddogs/internal/models"

	"gorm.io/gorm"
)

func InitializeTables(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("InitializeTables")
	log.Info("Migrating application tables")

	if err := db.AutoMigrate(&RiderApplication{}, &User{}); err != nil {
		return log.Err("failed to migrate tables", err)
	}

	log.Info("Table initialization complete")
	return nil
}
