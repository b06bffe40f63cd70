package config

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"campus-errand-api/models"
)

type Config struct {
	Port     string
	DBPath   string
	GinMode  string
	LogLevel string
}

// Load reads configuration from the environment, with a .env file as an
// optional source and sensible defaults for local development.
func Load() Config {
	_ = godotenv.Load()
	return Config{
		Port:     getEnv("PORT", "8080"),
		DBPath:   getEnv("DB_PATH", "campus_errand.db"),
		GinMode:  getEnv("GIN_MODE", gin.DebugMode),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// NewLogger builds the process-wide structured logger.
func NewLogger(level string) *logrus.Logger {
	log := logrus.New()
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)
	return log
}

// InitDB opens the sqlite store and migrates all models. The connection
// pool is limited to one connection: sqlite has a single writer anyway,
// and serializing access keeps conditional updates race-free under load.
func InitDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Order{},
		&models.Review{},
		&models.Notification{},
	); err != nil {
		return nil, err
	}
	return db, nil
}
