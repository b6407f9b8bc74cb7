package database

import (
	"strings"

	"github.com/andrewwoood/habitspark/internal/config"
	"github.com/andrewwoood/habitspark/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the database named by the config. A postgres:// URL selects
// the postgres driver, anything else is treated as a SQLite path.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector

	if strings.HasPrefix(cfg.DatabaseURL, "postgres") {
		dialector = postgres.Open(cfg.DatabaseURL)
	} else {
		dialector = sqlite.Open(cfg.DatabaseURL)
	}

	return gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Habit{},
		&models.HabitCompletion{},
		&models.Group{},
		&models.GroupMember{},
		&models.GroupInvite{},
		&models.GroupDailyStat{},
		&models.Activity{},
	)
}
