package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string
	// APIBaseURL is the base the workflow client talks to. Same-origin deployments
	// point it at this server's /api group, split deployments at an external host.
	APIBaseURL  string
	FrontendURL string
	DBUrl       string
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Auth
	JWTSecret          string
	JWTExpirationHours int
	BcryptCost         int
	// SMTP for signup welcome emails (disabled when host is empty)
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	// Mock latency
	QuestionDelay time.Duration
	AnalysisDelay time.Duration
	// ClamAV daemon for upload scanning (disabled when empty)
	ClamAVAddress string
	// Rate Limiting Configuration
	UploadRateLimitPerMinute int
	// Logging
	LogLevel string
	LogFile  string // Optional rotating log file, stdout only when empty
}

func LoadConfig() (*Config, error) {
	// Load .env file (only effective locally; ignored when the file does not exist)
	_ = godotenv.Load()

	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		// Strip trailing slash to prevent double slashes when joining paths
		APIBaseURL:               strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:8080/api"), "/"),
		FrontendURL:              strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		DBUrl:                    getEnv("DATABASE_URL", ""),
		UpstashRedisURL:          getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword:     getEnv("UPSTASH_REDIS_PASSWORD", ""),
		JWTSecret:                getEnv("JWT_SECRET", ""),
		JWTExpirationHours:       getEnvInt("JWT_EXPIRATION_HOURS", 24),
		BcryptCost:               getEnvInt("BCRYPT_COST", 12),
		SMTPHost:                 getEnv("SMTP_HOST", ""),
		SMTPPort:                 getEnv("SMTP_PORT", "587"),
		SMTPUsername:             getEnv("SMTP_USERNAME", ""),
		SMTPPassword:             getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:                 getEnv("SMTP_FROM", ""),
		QuestionDelay:            time.Duration(getEnvInt("QUESTION_DELAY_MS", 1500)) * time.Millisecond,
		AnalysisDelay:            time.Duration(getEnvInt("ANALYSIS_DELAY_MS", 2000)) * time.Millisecond,
		ClamAVAddress:            getEnv("CLAMAV_ADDRESS", ""),
		UploadRateLimitPerMinute: getEnvInt("UPLOAD_RATE_LIMIT_PER_MINUTE", 10),
		LogLevel:                 getEnv("LOG_LEVEL", "debug"),
		LogFile:                  getEnv("LOG_FILE", ""),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Users and sessions are kept in memory.")
	}

	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	if cfg.JWTSecret == "" {
		log.Println("WARNING: JWT_SECRET is missing. Signup will not issue tokens.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// IsProduction reports whether gin runs in release mode.
func IsProduction() bool {
	return getEnvBool("PRODUCTION", false) || os.Getenv("GIN_MODE") == "release"
}
