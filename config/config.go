package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Env                string
	Port               string
	DBURL              string
	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessExpiryMin    int
	RefreshExpiryDays  int

	LoginMaxAttempts int
	LockoutMinutes   int

	RedisURL           string
	LoginLimitWindow   int // minutes
	LoginLimitMax      int
	FrontOrigins       []string
	CookieDomain       string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	FileMaxMB int
	MaxPages  int
}

func Load() *Config {
	// Optional; real deployments set the environment directly.
	_ = godotenv.Load()

	return &Config{
		Env:                getEnv("ENV", "development"),
		Port:               getEnv("PORT", "3001"),
		DBURL:              mustGetEnv("DB_URL"),
		AccessTokenSecret:  mustGetEnv("JWT_SECRET"),
		RefreshTokenSecret: mustGetEnv("REFRESH_SECRET"),
		AccessExpiryMin:    getEnvAsInt("ACCESS_TTL_MIN", 15),
		RefreshExpiryDays:  getEnvAsInt("REFRESH_TTL_DAYS", 7),
		LoginMaxAttempts:   getEnvAsInt("LOGIN_MAX_ATTEMPTS", 5),
		LockoutMinutes:     getEnvAsInt("LOCKOUT_MINUTES", 5),
		RedisURL:           getEnv("REDIS_URL", "redis://127.0.0.1:6379/0"),
		LoginLimitWindow:   getEnvAsInt("LOGIN_LIMIT_WINDOW_MIN", 15),
		LoginLimitMax:      getEnvAsInt("LOGIN_LIMIT_MAX", 10),
		FrontOrigins:       splitCSV(getEnv("FRONT_ORIGIN", "")),
		CookieDomain:       getEnv("COOKIE_DOMAIN", ""),
		MinioEndpoint:      getEnv("MINIO_ENDPOINT", ""),
		MinioAccessKey:     getEnv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey:     getEnv("MINIO_SECRET_KEY", ""),
		MinioBucket:        getEnv("MINIO_BUCKET", ""),
		MinioUseSSL:        getEnvAsBool("MINIO_USE_SSL", true),
		FileMaxMB:          getEnvAsInt("FILE_MAX_MB", 50),
		MaxPages:           getEnvAsInt("MAX_PAGES", 500),
	}
}

// MinioEnabled reports whether every object-storage variable is present.
// The service still boots without MinIO; uploads are rejected instead.
func (c *Config) MinioEnabled() bool {
	return c.MinioEndpoint != "" && c.MinioAccessKey != "" && c.MinioSecretKey != "" && c.MinioBucket != ""
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func mustGetEnv(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Fatalf("Missing required environment variable: %s", key)
	return ""
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}

func getEnvAsBool(key string, defaultVal bool) bool {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %t", key, defaultVal)
		return defaultVal
	}
	return val
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
