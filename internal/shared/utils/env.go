package utils

import (
	"os"
	"strconv"
	"time"
)

// GetEnv returns the value of key, or fallback when it is unset or empty
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// GetEnvInt parses key as an integer, falling back on absence or parse failure
func GetEnvInt(key string, fallback int) int {
	value, err := strconv.Atoi(GetEnv(key, ""))
	if err != nil {
		return fallback
	}
	return value
}

// GetEnvFloat parses key as a float, falling back on absence or parse failure
func GetEnvFloat(key string, fallback float64) float64 {
	value, err := strconv.ParseFloat(GetEnv(key, ""), 64)
	if err != nil {
		return fallback
	}
	return value
}

// GetEnvBool is true only when key is set to "true"
func GetEnvBool(key string, fallback bool) bool {
	switch GetEnv(key, "") {
	case "true":
		return true
	case "false":
		return false
	default:
		return fallback
	}
}

// GetEnvDuration parses key with time.ParseDuration, falling back on absence or parse failure
func GetEnvDuration(key string, fallback time.Duration) time.Duration {
	value, err := time.ParseDuration(GetEnv(key, ""))
	if err != nil {
		return fallback
	}
	return value
}
