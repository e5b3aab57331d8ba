package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"SAGE_PORT", "NATS_URL", "NATS_TOKEN", "DATABASE_URL",
		"LOG_LEVEL", "SAGE_CONFIDENCE_THRESHOLD", "SAGE_CHAT_SUBJECT", "SAGE_API_TOKEN",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != 8780 {
		t.Errorf("Port = %d, want 8780", cfg.Port)
	}
	if cfg.NatsURL != "nats://localhost:4222" {
		t.Errorf("NatsURL = %q", cfg.NatsURL)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.ConfidenceThreshold != 0.5 {
		t.Errorf("ConfidenceThreshold = %f, want 0.5", cfg.ConfidenceThreshold)
	}
	if cfg.ChatSubject != "journal.chat.message" {
		t.Errorf("ChatSubject = %q", cfg.ChatSubject)
	}
	if cfg.DatabaseURL != "" || cfg.APIToken != "" || cfg.NatsToken != "" {
		t.Error("secrets should default to empty")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SAGE_PORT", "9100")
	t.Setenv("NATS_URL", "nats://broker:4222")
	t.Setenv("DATABASE_URL", "postgres://localhost/journal")
	t.Setenv("SAGE_CONFIDENCE_THRESHOLD", "0.75")
	t.Setenv("SAGE_CHAT_SUBJECT", "journal.chat.test")
	t.Setenv("SAGE_API_TOKEN", "secret")

	cfg := Load()
	if cfg.Port != 9100 {
		t.Errorf("Port = %d, want 9100", cfg.Port)
	}
	if cfg.NatsURL != "nats://broker:4222" {
		t.Errorf("NatsURL = %q", cfg.NatsURL)
	}
	if cfg.DatabaseURL != "postgres://localhost/journal" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.ConfidenceThreshold != 0.75 {
		t.Errorf("ConfidenceThreshold = %f, want 0.75", cfg.ConfidenceThreshold)
	}
	if cfg.ChatSubject != "journal.chat.test" {
		t.Errorf("ChatSubject = %q", cfg.ChatSubject)
	}
	if cfg.APIToken != "secret" {
		t.Errorf("APIToken = %q", cfg.APIToken)
	}
}

func TestLoad_MalformedNumbersFallBack(t *testing.T) {
	t.Setenv("SAGE_PORT", "not-a-port")
	t.Setenv("SAGE_CONFIDENCE_THRESHOLD", "high")

	cfg := Load()
	if cfg.Port != 8780 {
		t.Errorf("Port = %d, want default on parse failure", cfg.Port)
	}
	if cfg.ConfidenceThreshold != 0.5 {
		t.Errorf("ConfidenceThreshold = %f, want default on parse failure", cfg.ConfidenceThreshold)
	}
}
