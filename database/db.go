package database

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"logistics-erp/logger"
	fileModel "logistics-erp/models/file"
	logModel "logistics-erp/models/log"
	partModel "logistics-erp/models/part"
	shipmentModel "logistics-erp/models/shipment"
)

var DB *gorm.DB

// InitDB connects to PostgreSQL using env configuration, runs migrations and
// creates the supporting indexes. TranslateError is on so a duplicate enquiry
// number surfaces as gorm.ErrDuplicatedKey on every driver.
func InitDB() (*gorm.DB, error) {
	if err := godotenv.Load(); err != nil {
		logger.Warning("No .env file loaded")
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	database := os.Getenv("DB_DATABASE")
	user := os.Getenv("DB_USERNAME")
	password := os.Getenv("DB_PASSWORD")
	sslmode := os.Getenv("DB_SSLMODE")
	if sslmode == "" {
		sslmode = "disable"
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, database, sslmode)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")

	if err := Migrate(DB); err != nil {
		logger.Error("Failed to run migrations", err)
		return nil, err
	}
	logger.Success("All migrations completed successfully")

	return DB, nil
}

// Migrate runs auto migration for all models and creates the listing indexes.
// Shared by InitDB, the migration tool and the test setup.
func Migrate(db *gorm.DB) error {
	models := []interface{}{
		&shipmentModel.Shipment{},
		&partModel.Part{},
		&fileModel.File{},
		&logModel.Log{},
	}

	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return createIndexes(db)
}

// createIndexes adds the indexes the listing and search paths depend on.
// AutoMigrate already creates the tag-declared ones; these cover the
// default-listing sort and the customer search.
func createIndexes(db *gorm.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_shipments_status_created_at ON shipments(status, created_at)",
		"CREATE INDEX IF NOT EXISTS idx_shipments_customer ON shipments(customer)",
		"CREATE INDEX IF NOT EXISTS idx_logs_created_at ON logs(created_at)",
	}
	for _, stmt := range indexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}
