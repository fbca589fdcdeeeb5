package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver           string
	DBDSN              string
	DBMaxOpenConns     int
	Port               string
	GinMode            string
	LogLevel           string
	PaymentAmountCheck string
	RateLimitPerSecond int
	CORSOrigin         string
}

// Load reads .env when present and then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}
	return FromEnv()
}

func FromEnv() *Config {
	return &Config{
		DBDriver:           getEnv("DB_DRIVER", "sqlite"),
		DBDSN:              getEnv("DB_DSN", "restaurant.db"),
		DBMaxOpenConns:     getEnvInt("DB_MAX_OPEN_CONNS", 1),
		Port:               getEnv("PORT", "8080"),
		GinMode:            getEnv("GIN_MODE", "debug"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		PaymentAmountCheck: getEnv("PAYMENT_AMOUNT_CHECK", "none"),
		RateLimitPerSecond: getEnvInt("RATE_LIMIT_PER_SECOND", 50),
		CORSOrigin:         getEnv("CORS_ORIGIN", "*"),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Warning: %s=%q is not a number, using %d", key, v, fallback)
		return fallback
	}
	return n
}
