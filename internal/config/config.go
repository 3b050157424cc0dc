package config

import (
	"os"
	"strconv"
)

// MongoConfig holds MongoDB connection settings for the animal outcomes store.
// AuthSource falls back to the database name when left empty, matching the
// conventional authSource default for application users.
type MongoConfig struct {
	User       string
	Password   string
	Host       string
	Port       int
	Database   string
	Collection string
	AuthSource string
}

// MinIOConfig holds object storage settings for animal photos.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost string
	Port    string
	Mongo   MongoConfig
	MinIO   MinIOConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost: getEnv("APP_HOST", "localhost:8080"),
		Port:    getEnv("PORT", "8080"), // default only for non-sensitive value
		Mongo: MongoConfig{
			User:       getEnv("MONGO_USER", ""),
			Password:   getEnv("MONGO_PASSWORD", ""),
			Host:       getEnv("MONGO_HOST", ""),
			Port:       getEnvInt("MONGO_PORT", 27017),
			Database:   getEnv("MONGO_DB", "aac"),
			Collection: getEnv("MONGO_COLLECTION", "animals"),
			AuthSource: getEnv("MONGO_AUTH_SOURCE", ""),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
