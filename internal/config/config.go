package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL          string   // Postgres connection string; empty falls back to the in-memory store
	RedisURL             string   // Optional profile cache
	FrontendURL          string   // Base URL for reset links handed to the notifier
	JWTSecret            string   // Secret key for JWT token signing
	JWTTTLHours          int      // Session token lifetime in hours
	ResetTokenTTLMinutes int      // Reset token lifetime in minutes
	BcryptCost           int      // Work factor for password hashing
	SignupRequiredFields []string // Profile fields required at signup, beyond email and password
	DebugEndpoints       bool     // Mounts /api/check-users when true; never enable in production
	Port                 int
}

func Load() *Config {
	// Try to load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables or defaults")
	}

	return &Config{
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		RedisURL:             getEnv("REDIS_URL", ""),
		FrontendURL:          getEnv("FRONTEND_URL", "http://localhost:3000"),
		JWTSecret:            getEnv("JWT_SECRET", ""),
		JWTTTLHours:          getEnvInt("JWT_TTL_HOURS", 24),
		ResetTokenTTLMinutes: getEnvInt("RESET_TOKEN_TTL_MINUTES", 60),
		BcryptCost:           getEnvInt("BCRYPT_COST", 10),
		SignupRequiredFields: getEnvList("SIGNUP_REQUIRED_FIELDS", []string{"username", "phone"}),
		DebugEndpoints:       getEnvBool("DEBUG_ENDPOINTS", false),
		Port:                 getEnvInt("PORT", 4000),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var fields []string
	for _, f := range strings.Split(value, ",") {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, f)
		}
	}
	return fields
}
