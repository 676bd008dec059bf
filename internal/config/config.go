package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration, loaded once at startup.
type Config struct {
	// HTTP
	Port string

	// DATABASE_URL: postgres:// DSN in production, a file path for local sqlite.
	DatabaseURL string

	JWTSecret string

	// Blob storage. When MinIO settings are empty the local-disk backend is used.
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
	UploadsDir     string

	// Outbound mail. Empty API key means mails are logged instead of sent.
	ResendAPIKey string
	FromEmail    string
	BaseURL      string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		DatabaseURL:    getEnv("DATABASE_URL", "photoshare.db"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		MinioEndpoint:  os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey: os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:    getEnv("MINIO_BUCKET", "photoshare"),
		MinioUseSSL:    getBoolEnv("MINIO_USE_SSL", false),
		UploadsDir:     getEnv("UPLOADS_DIR", "./uploads"),
		ResendAPIKey:   os.Getenv("RESEND_API_KEY"),
		FromEmail:      getEnv("FROM_EMAIL", "no-reply@photoshare.local"),
		BaseURL:        getEnv("BASE_URL", "http://127.0.0.1:8080"),
	}

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is empty")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
