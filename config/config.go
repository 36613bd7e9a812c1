package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string
	RedisAddr   string
	RedisDB     int
	JWTSecret   string

	// Upload store backend: "filesystem" (default) or "s3".
	StorageType string
	UploadDir   string
	PublicBase  string
	S3Bucket    string
	S3Region    string
	S3Prefix    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string

	GeminiAPIKey string
	GeminiModel  string

	ContactRatePerMinute int
	LoginRatePerMinute   int
}

func Load() Config {
	_ = godotenv.Load()
	cfg := Config{
		Port:        get("PORT", "8080"),
		DatabaseURL: must("DATABASE_URL"),
		RedisAddr:   get("REDIS_ADDR", "localhost:6379"),
		RedisDB:     getInt("REDIS_DB", 0),
		JWTSecret:   must("JWT_SECRET"),

		StorageType: get("STORAGE_TYPE", "filesystem"),
		UploadDir:   get("UPLOAD_DIR", "uploads"),
		PublicBase:  get("PUBLIC_BASE_URL", "https://atfplatform.tw1.ru"),
		S3Bucket:    get("S3_BUCKET", ""),
		S3Region:    get("S3_REGION", "eu-central-1"),
		S3Prefix:    get("S3_PREFIX", "portal"),
		S3Endpoint:  get("S3_ENDPOINT", ""),
		S3AccessKey: get("S3_ACCESS_KEY", ""),
		S3SecretKey: get("S3_SECRET_KEY", ""),

		GeminiAPIKey: get("GEMINI_API_KEY", ""),
		GeminiModel:  get("GEMINI_MODEL", "gemini-2.5-flash"),

		ContactRatePerMinute: getInt("CONTACT_RATE_PER_MIN", 5),
		LoginRatePerMinute:   getInt("LOGIN_RATE_PER_MIN", 20),
	}
	return cfg
}

func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("missing required env: %s", k)
	}
	return v
}
