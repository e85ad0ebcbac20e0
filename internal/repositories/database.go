package repositories

import (
	"fmt"
	"log"
	"strings"

	"jualsampah/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// legacyPickupColumn is the boolean flag used by the first revision of the orders table.
const legacyPickupColumn = "isPickedUp"

// OpenDatabase initializes and returns a GORM database instance for the given driver.
func OpenDatabase(driver, dsn, logLevel string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch strings.ToLower(driver) {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(parseLogLevel(logLevel)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the orders and collectors tables, then carries
// rows written with the legacy pickup flag over to the status column.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Order{}, &models.Collector{}); err != nil {
		return fmt.Errorf("failed to auto-migrate database: %w", err)
	}
	return migrateLegacyPickupFlag(db)
}

// migrateLegacyPickupFlag marks picked-up orders as completed. The legacy
// column is left in place; the API no longer reads or writes it.
func migrateLegacyPickupFlag(db *gorm.DB) error {
	if !db.Migrator().HasColumn(&models.Order{}, legacyPickupColumn) {
		return nil
	}
	res := db.Model(&models.Order{}).
		Where(fmt.Sprintf("%s = ?", db.Statement.Quote(legacyPickupColumn)), true).
		Where("status_pemesanan = ?", models.StatusPending).
		Update("status_pemesanan", models.StatusCompleted)
	if res.Error != nil {
		return fmt.Errorf("failed to migrate legacy pickup flag: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		log.Printf("Migrated %d legacy picked-up orders to status %s", res.RowsAffected, models.StatusCompleted)
	}
	return nil
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
