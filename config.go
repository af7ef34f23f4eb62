package main

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration for the restaurant service.
type Config struct {
	Port             string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     string
	PostgresSSLMode  string
	PostgresTimeZone string
	RedisURL         string
	KafkaBrokers     string
	OrderTopic       string
	JWTSecret        string

	ThrottlePerMinute int
	ThrottleBurst     int
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresHost:     os.Getenv("POSTGRES_HOST"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		PostgresTimeZone: getEnv("POSTGRES_TIMEZONE", "UTC"),
		RedisURL:         getEnv("REDIS_URL", "redis://localhost:6379"),
		KafkaBrokers:     os.Getenv("KAFKA_BROKERS"),
		OrderTopic:       getEnv("ORDER_TOPIC", "order.created"),
		JWTSecret:        os.Getenv("JWT_SECRET"),

		ThrottlePerMinute: getEnvInt("THROTTLE_PER_MINUTE", 100),
		ThrottleBurst:     getEnvInt("THROTTLE_BURST", 50),
	}

	if cfg.PostgresUser == "" || cfg.PostgresPassword == "" || cfg.PostgresDB == "" || cfg.PostgresHost == "" {
		return nil, fmt.Errorf("database config incomplete")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
