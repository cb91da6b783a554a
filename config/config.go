// Package config loads runtime configuration from the environment and
// builds the external clients (Postgres, Redis).
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr string

	JWTSecret string
	JWTIssuer string

	AccessTokenTTL       time.Duration
	VerificationTokenTTL time.Duration

	RegisterRateMax    int
	RegisterRateWindow time.Duration
	BlacklistIPs       []string
	BlacklistRedisKey  string

	ResendAPIKey string
	EmailFrom    string
	AppBaseURL   string

	AMQPURL string
}

func Load() Config {
	return Config{
		HTTPAddr:             envStr("HTTP_ADDR", ":8080"),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		JWTIssuer:            envStr("JWT_ISSUER", "dealerdesk"),
		AccessTokenTTL:       envDur("ACCESS_TOKEN_TTL", 15*time.Minute),
		VerificationTokenTTL: envDur("VERIFICATION_TOKEN_TTL", 24*time.Hour),
		RegisterRateMax:      envInt("REGISTER_RATE_MAX", 5),
		RegisterRateWindow:   envDur("REGISTER_RATE_WINDOW", time.Hour),
		BlacklistIPs:         splitCSV(os.Getenv("BLACKLIST_IPS")),
		BlacklistRedisKey:    envStr("BLACKLIST_REDIS_KEY", "register:blacklist"),
		ResendAPIKey:         os.Getenv("RESEND_API_KEY"),
		EmailFrom:            os.Getenv("EMAIL_FROM"),
		AppBaseURL:           envStr("APP_BASE_URL", "http://localhost:3000"),
		AMQPURL:              os.Getenv("RABBITMQ_URL"),
	}
}

func envStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	if n, err := strconv.Atoi(value); err == nil {
		return n
	}
	return fallback
}

func envDur(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	return fallback
}

func splitCSV(value string) []string {
	if value == "" {
		return nil
	}
	var parts []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
