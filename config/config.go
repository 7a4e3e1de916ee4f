package config

import (
	"log"
	"os"
	"strings"

	"cloud-kitchen-api/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// JWTSecret used to sign tokens — read from env or fallback
var JWTSecret = []byte(GetEnv("JWT_SECRET", "cloud_kitchen_super_secret_2024"))

func GetEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// OpenDB opens a sqlite database at dsn and migrates the schema. The
// kitchen status singleton row is created here so every database,
// including test databases, has one.
func OpenDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	// In-memory sqlite gives each pooled connection its own database;
	// pin the pool to a single connection so the schema survives.
	if strings.Contains(dsn, ":memory:") {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.AdminUser{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
		&models.ReviewComment{},
		&models.OTP{},
		&models.KitchenStatus{},
	)
	if err != nil {
		return nil, err
	}

	kitchen := models.KitchenStatus{ID: 1, IsOpen: true}
	if err := db.Where(models.KitchenStatus{ID: 1}).FirstOrCreate(&kitchen).Error; err != nil {
		return nil, err
	}

	return db, nil
}

// InitDB connects the process-wide database and seeds initial data.
func InitDB() {
	var err error
	DB, err = OpenDB(GetEnv("DB_PATH", "cloud_kitchen.db"))
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := Seed(DB); err != nil {
		log.Fatal("Failed to seed database:", err)
	}

	log.Println("Database connected and migrated")
}
