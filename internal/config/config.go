package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// MissingProductPolicy controls what the cart does with a line item whose
// product has been deleted from the catalog.
type MissingProductPolicy string

const (
	// PruneMissing silently drops stale lines on read.
	PruneMissing MissingProductPolicy = "prune"
	// KeepMissing returns stale lines flagged unavailable, excluded from the total.
	KeepMissing MissingProductPolicy = "keep"
)

type Config struct {
	ServerPort int

	DB_HOST     string
	DB_PORT     string
	DB_USER     string
	DB_PASSWORD string
	DB_NAME     string

	JWT_SECRET string

	KAFKA_ADDRESS string

	ES_URL      string
	ES_USER     string
	ES_PASSWORD string
	ES_INDEX    string

	TWILIO_ACCOUNT_SID  string
	TWILIO_AUTH_TOKEN   string
	TWILIO_PHONE_NUMBER string

	UploadDir string

	CartMissingProductPolicy MissingProductPolicy
}

func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		ServerPort: envIntDefault("SERVER_PORT", 5000),

		DB_HOST:     os.Getenv("DB_HOST"),
		DB_PORT:     os.Getenv("DB_PORT"),
		DB_USER:     os.Getenv("DB_USER"),
		DB_PASSWORD: os.Getenv("DB_PASSWORD"),
		DB_NAME:     os.Getenv("DB_NAME"),

		JWT_SECRET: os.Getenv("JWT_SECRET"),

		KAFKA_ADDRESS: os.Getenv("KAFKA_ADDRESS"),

		ES_URL:      os.Getenv("ES_URL"),
		ES_USER:     os.Getenv("ES_USER"),
		ES_PASSWORD: os.Getenv("ES_PASSWORD"),
		ES_INDEX:    envDefault("ES_INDEX", "products"),

		TWILIO_ACCOUNT_SID:  os.Getenv("TWILIO_ACCOUNT_SID"),
		TWILIO_AUTH_TOKEN:   os.Getenv("TWILIO_AUTH_TOKEN"),
		TWILIO_PHONE_NUMBER: os.Getenv("TWILIO_PHONE_NUMBER"),

		UploadDir: envDefault("UPLOAD_DIR", "uploads"),

		CartMissingProductPolicy: missingProductPolicy(os.Getenv("CART_MISSING_PRODUCT_POLICY")),
	}

	return config, nil
}

func missingProductPolicy(v string) MissingProductPolicy {
	if strings.EqualFold(v, string(KeepMissing)) {
		return KeepMissing
	}
	return PruneMissing
}

func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func MustNonEmpty(value, envName string) {
	if value == "" {
		log.Fatalf("missing required env %s", envName)
	}
}
