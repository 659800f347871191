package config

import (
	"os"
	"strconv"

	"github.com/gofiber/fiber/v2/log"
	"github.com/joho/godotenv"
)

// DefaultCORSOrigin is the admin frontend's development address.
const DefaultCORSOrigin = "http://localhost:3000"

type Config struct {
	Port        string
	Env         string
	DBPath      string
	UploadDir   string
	CORSOrigin  string
	Seed        bool
	BodyLimitMB int
}

func Load() *Config {
	loadDotEnv()

	return &Config{
		Port:        getEnv("PORT", "3001"),
		Env:         getEnv("APP_ENV", "production"),
		DBPath:      getEnv("DB_PATH", "data/database.db"),
		UploadDir:   getEnv("UPLOAD_DIR", "uploads"),
		CORSOrigin:  getEnv("CORS_ORIGIN", DefaultCORSOrigin),
		Seed:        getBool("SEED", false),
		BodyLimitMB: getInt("BODY_LIMIT_MB", 8),
	}
}

// ClientConfig configures the admin console.
type ClientConfig struct {
	APIURL    string
	StatePath string
}

// LoadClient reads the console settings. An empty StatePath means the
// default location under the user's config directory.
func LoadClient() *ClientConfig {
	loadDotEnv()

	return &ClientConfig{
		APIURL:    getEnv("CATALOG_API", "http://localhost:3001/api"),
		StatePath: getEnv("CATALOG_STATE", ""),
	}
}

// A .env file only exists in local development; deployments use the real environment.
func loadDotEnv() {
	if _, err := os.Stat(".env"); err != nil {
		return
	}
	if err := godotenv.Load(); err != nil {
		log.Warnf("Error loading .env file: %v", err)
		return
	}
	log.Debug(".env file loaded")
}

// Development reports whether internal error messages may be sent to clients.
func (c *Config) Development() bool {
	return c.Env == "development"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
