package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port                int
	NatsURL             string
	NatsToken           string
	DatabaseURL         string
	LogLevel            string
	ConfidenceThreshold float64
	ChatSubject         string
	APIToken            string
}

func Load() Config {
	return Config{
		Port:                envInt("SAGE_PORT", 8780),
		NatsURL:             envStr("NATS_URL", "nats://localhost:4222"),
		NatsToken:           envStr("NATS_TOKEN", ""),
		DatabaseURL:         envStr("DATABASE_URL", ""),
		LogLevel:            envStr("LOG_LEVEL", "info"),
		ConfidenceThreshold: envFloat("SAGE_CONFIDENCE_THRESHOLD", 0.5),
		ChatSubject:         envStr("SAGE_CHAT_SUBJECT", "journal.chat.message"),
		APIToken:            envStr("SAGE_API_TOKEN", ""),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
