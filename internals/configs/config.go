package configs

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var (
	AppEnv            string
	LogLevel          string
	Port              string
	JWTSecret         string
	JWTAccessTTL      time.Duration
	RedisAddr         string
	DashboardCacheTTL time.Duration
	CORSOrigins       []string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ .env not found, using system ENV")
		} else {
			log.Println("✅ .env loaded")
		}
	} else {
		log.Println("🚀 Running in Railway, using system ENV")
	}

	AppEnv = GetEnv("APP_ENV", "development")
	LogLevel = GetEnv("LOG_LEVEL", "info")
	Port = GetEnv("PORT", "3000")
	JWTSecret = GetEnv("JWT_SECRET")
	JWTAccessTTL = GetEnvDuration("JWT_ACCESS_TTL", 12*time.Hour)
	RedisAddr = GetEnv("REDIS_ADDR")
	DashboardCacheTTL = GetEnvDuration("DASHBOARD_CACHE_TTL", 5*time.Minute)
	CORSOrigins = GetEnvList("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET is not set!")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvInt(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// GetEnvDuration menerima format time.ParseDuration ("90s", "12h") atau angka detik.
func GetEnvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return def
}

func GetEnvList(key, def string) []string {
	raw := GetEnv(key, def)
	out := make([]string, 0)
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func IsProduction() bool {
	return AppEnv == "production" || AppEnv == "staging"
}
