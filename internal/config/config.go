package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// DefaultMaxUploadSize is the upload ceiling when MAX_UPLOAD_SIZE is unset (5 GiB).
const DefaultMaxUploadSize = 5 * 1024 * 1024 * 1024

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     int

	RedisAddr string
	RedisDB   int
	RedisPass string

	// SecretKey signs session tokens.
	SecretKey string

	UploadDir     string
	MaxUploadSize int64

	SpeechServiceURL    string
	TranslateServiceURL string
	EnrichTimeout       time.Duration

	SwaggerHost string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "root"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getEnv("DB_NAME", "parampara"),
		DBPort:     getEnvInt("DB_PORT", 3306),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:   getEnvInt("REDIS_DB", 0),
		RedisPass: os.Getenv("REDIS_PASSWORD"),

		SecretKey: getEnv("SECRET_KEY", "change-me"),

		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
		MaxUploadSize: getEnvInt64("MAX_UPLOAD_SIZE", DefaultMaxUploadSize),

		SpeechServiceURL:    getEnv("SPEECH_SERVICE_URL", "http://localhost:9000"),
		TranslateServiceURL: getEnv("TRANSLATE_SERVICE_URL", "http://localhost:5001"),
		EnrichTimeout:       time.Duration(getEnvInt("ENRICH_TIMEOUT_SECONDS", 60)) * time.Second,

		SwaggerHost: os.Getenv("SWAGGER_HOST"),
	}
}

// MySQLDSN assembles the GORM MySQL DSN from the DB_* settings.
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			return parsed
		}
	}
	return def
}
