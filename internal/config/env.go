package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL      string
	AwsAccessKey     string
	AwsSecretKey     string
	AwsRegion        string
	BucketName       string
	AIAPIKey         string
	EmbedModel       string
	EmbedDim         int
	GenModel         string
	UnstructuredURL  string
	UnstructuredKey  string
	SyncSecret       string
	JWTSecret        string
	WorkDir          string
	Port             string
}

// LoadConfig loads the environment variables and returns the config.
func LoadConfig() *Config {

	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		AwsAccessKey:    getEnv("AWS_ACCESS_KEY", ""),
		AwsSecretKey:    getEnv("AWS_SECRET_KEY", ""),
		AwsRegion:       getEnv("AWS_REGION", "us-east-2"),
		BucketName:      getEnv("BUCKET_NAME", "preprocessa-sources"),
		AIAPIKey:        getEnv("GEMINI_API_KEY", ""),
		EmbedModel:      getEnv("EMBED_MODEL", "gemini-embedding-001"),
		EmbedDim:        getEnvInt("EMBED_DIM", 1024),
		GenModel:        getEnv("GEN_MODEL", "gemini-1.5-flash"),
		UnstructuredURL: getEnv("UNSTRUCTURED_API_URL", ""),
		UnstructuredKey: getEnv("UNSTRUCTURED_API_KEY", ""),
		SyncSecret:      getEnv("CRON_JOB_SECRET", ""),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		WorkDir:         getEnv("WORK_DIR", "."),
		Port:            getEnv("PORT", "8080"),
	}

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL not set")
	}

	return cfg
}

// Helper to read environment variables with a default fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, def int) int {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("WARN: %s=%q not an int, using default %d", key, v, def)
		return def
	}
	return n
}
