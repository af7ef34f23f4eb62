package database

import (
	"fmt"

	"restaurant-service/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// DBConfig holds the Postgres connection parameters.
type DBConfig struct {
	User     string
	Password string
	Name     string
	Host     string
	Port     string
	SSLMode  string
	TimeZone string
}

// Connect opens the Postgres connection and stores it in the package-level DB.
func Connect(cfg DBConfig) error {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, cfg.SSLMode, cfg.TimeZone)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	return nil
}

// Migrate runs auto-migration for all models and seeds the well-known groups.
func Migrate() error {
	if err := DB.AutoMigrate(
		&models.Category{},
		&models.MenuItem{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Group{},
		&models.User{},
	); err != nil {
		return err
	}

	for _, name := range []string{models.GroupManager, models.GroupDeliveryCrew} {
		if err := DB.Where(models.Group{Name: name}).FirstOrCreate(&models.Group{Name: name}).Error; err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying connection pool.
func Close() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
