package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/jammission/backend/internal/models"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Config struct {
	DB_HOST     string
	DB_PORT     string
	DB_USER     string
	DB_PASSWORD string
	DB_NAME     string

	REDIS_ADDR     string
	REDIS_PASSWORD string

	ES_URL      string
	ES_USER     string
	ES_PASSWORD string

	JWT_SECRET      string
	REFRESH_SECRET  string
	// BOOTSTRAP_TOKEN lets the first technical admin register on a
	// fresh deployment. Leave empty once staff accounts exist.
	BOOTSTRAP_TOKEN string

	KAFKA_ADDRESS string

	SMTP_HOST     string
	SMTP_PORT     int
	SMTP_USER     string
	SMTP_PASSWORD string
	SMTP_FROM     string
	// NOTIFY_EMAILS is a comma separated list of staff addresses that
	// receive submission notifications. Empty disables email dispatch.
	NOTIFY_EMAILS []string

	LOG_LEVEL string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	smtpPort, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))

	config := &Config{
		DB_HOST:         os.Getenv("DB_HOST"),
		DB_PORT:         os.Getenv("DB_PORT"),
		DB_USER:         os.Getenv("DB_USER"),
		DB_PASSWORD:     os.Getenv("DB_PASSWORD"),
		DB_NAME:         os.Getenv("DB_NAME"),
		REDIS_ADDR:      os.Getenv("REDIS_ADDR"),
		REDIS_PASSWORD:  os.Getenv("REDIS_PASSWORD"),
		ES_URL:          os.Getenv("ES_URL"),
		ES_USER:         os.Getenv("ES_USER"),
		ES_PASSWORD:     os.Getenv("ES_PASSWORD"),
		JWT_SECRET:      os.Getenv("JWT_SECRET"),
		REFRESH_SECRET:  os.Getenv("REFRESH_SECRET"),
		BOOTSTRAP_TOKEN: os.Getenv("BOOTSTRAP_TOKEN"),
		KAFKA_ADDRESS:   os.Getenv("KAFKA_ADDRESS"),
		SMTP_HOST:       os.Getenv("SMTP_HOST"),
		SMTP_PORT:       smtpPort,
		SMTP_USER:       os.Getenv("SMTP_USER"),
		SMTP_PASSWORD:   os.Getenv("SMTP_PASSWORD"),
		SMTP_FROM:       os.Getenv("SMTP_FROM"),
		NOTIFY_EMAILS:   splitAndTrim(os.Getenv("NOTIFY_EMAILS")),
		LOG_LEVEL:       os.Getenv("LOG_LEVEL"),
	}

	return config, nil
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func InitDB(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.DB_USER, cfg.DB_PASSWORD, cfg.DB_HOST, cfg.DB_PORT, cfg.DB_NAME,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Product{},
		&models.Service{},
		&models.Event{},
		&models.Booking{},
		&models.Order{},
		&models.ContactMessage{},
		&models.PreQualificationApplication{},
		&models.NewsletterSubscriber{},
		&models.BlogPost{},
		&models.User{},
		&models.RefreshToken{},
	)
}
