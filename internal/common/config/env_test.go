package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestIntFromEnv(t *testing.T) {
	key := "TEST_INT_ENV"

	t.Run("default", func(t *testing.T) {
		got, err := IntFromEnv(key, 42)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 42 {
			t.Errorf("expected 42, got %d", got)
		}
	})

	t.Run("valid", func(t *testing.T) {
		t.Setenv(key, " 100 ")
		got, err := IntFromEnv(key, 42)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 100 {
			t.Errorf("expected 100, got %d", got)
		}
	})

	t.Run("blank falls back", func(t *testing.T) {
		t.Setenv(key, "   ")
		got, err := IntFromEnv(key, 7)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 7 {
			t.Errorf("expected 7, got %d", got)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		t.Setenv(key, "not_int")
		if _, err := IntFromEnv(key, 42); err == nil {
			t.Fatal("expected error, got nil")
		}
	})
}

func TestBoolFromEnv(t *testing.T) {
	key := "TEST_BOOL_ENV"

	tests := []struct {
		val  string
		want bool
	}{
		{"true", true},
		{"1", true},
		{"YES", true},
		{"y", true},
		{"false", false},
		{"0", false},
		{"no", false},
	}

	for _, tt := range tests {
		t.Run(tt.val, func(t *testing.T) {
			t.Setenv(key, tt.val)
			got, err := BoolFromEnv(key, !tt.want)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}

	t.Run("invalid", func(t *testing.T) {
		t.Setenv(key, "maybe")
		if _, err := BoolFromEnv(key, false); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestDurationSecondsFromEnv(t *testing.T) {
	key := "TEST_DURATION_ENV"

	t.Setenv(key, "15")
	got, err := DurationSecondsFromEnv(key, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 15*time.Second {
		t.Errorf("expected 15s, got %v", got)
	}

	t.Setenv(key, "-1")
	if _, err := DurationSecondsFromEnv(key, 1); err == nil {
		t.Fatal("expected error for negative duration")
	}
}

func TestStringFromEnvFirstNonEmpty(t *testing.T) {
	t.Setenv("TEST_FIRST_A", "")
	t.Setenv("TEST_FIRST_B", "b-value")

	got := StringFromEnvFirstNonEmpty([]string{"TEST_FIRST_MISSING", "TEST_FIRST_A", "TEST_FIRST_B"}, "fallback")
	if got != "b-value" {
		t.Errorf("expected b-value, got %q", got)
	}

	got = StringFromEnvFirstNonEmpty([]string{"TEST_FIRST_MISSING"}, "fallback")
	if got != "fallback" {
		t.Errorf("expected fallback, got %q", got)
	}
}

func TestReadLogConfigFromEnv(t *testing.T) {
	t.Run("stdout only", func(t *testing.T) {
		t.Setenv("LOG_DIR", "")
		t.Setenv("LOG_LEVEL", "debug")
		cfg, err := ReadLogConfigFromEnv()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Dir != "" {
			t.Errorf("expected empty dir, got %q", cfg.Dir)
		}
		if cfg.Level != slog.LevelDebug {
			t.Errorf("expected debug level, got %v", cfg.Level)
		}
	})

	t.Run("file logging defaults", func(t *testing.T) {
		t.Setenv("LOG_DIR", "/tmp/jugalbandi-logs")
		t.Setenv("LOG_LEVEL", "")
		cfg, err := ReadLogConfigFromEnv()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.MaxSizeMB != 1 || cfg.MaxBackups != 30 || cfg.MaxAgeDays != 7 || !cfg.Compress {
			t.Errorf("unexpected defaults: %+v", cfg)
		}
		if cfg.Level != slog.LevelInfo {
			t.Errorf("expected info level, got %v", cfg.Level)
		}
	})

	t.Run("invalid level", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "loud")
		if _, err := ReadLogConfigFromEnv(); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestReadServerConfigFromEnv(t *testing.T) {
	t.Setenv("SERVER_HOST", "")
	t.Setenv("SERVER_PORT", "")
	cfg, err := ReadServerConfigFromEnv(40300)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Host != "0.0.0.0" || cfg.Port != 40300 {
		t.Errorf("unexpected server config: %+v", cfg)
	}

	t.Setenv("SERVER_PORT", "70000")
	if _, err := ReadServerConfigFromEnv(40300); err == nil {
		t.Fatal("expected error for out of range port")
	}
}

func TestReadTelemetryConfigFromEnv(t *testing.T) {
	t.Run("disabled by default", func(t *testing.T) {
		t.Setenv("OTEL_ENABLED", "")
		t.Setenv("OTEL_SERVICE_NAME", "")
		t.Setenv("OTEL_SAMPLE_RATE", "")
		cfg, err := ReadTelemetryConfigFromEnv("jugalbandi-bot")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Enabled {
			t.Error("expected telemetry disabled")
		}
		if cfg.ServiceName != "jugalbandi-bot" || cfg.SampleRate != 1.0 || !cfg.OTLPInsecure {
			t.Errorf("unexpected defaults: %+v", cfg)
		}
	})

	t.Run("enabled", func(t *testing.T) {
		t.Setenv("OTEL_ENABLED", "true")
		t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "otel-collector:4317")
		t.Setenv("OTEL_SAMPLE_RATE", "0.25")
		cfg, err := ReadTelemetryConfigFromEnv("jugalbandi-bot")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !cfg.Enabled || cfg.OTLPEndpoint != "otel-collector:4317" || cfg.SampleRate != 0.25 {
			t.Errorf("unexpected config: %+v", cfg)
		}
	})

	t.Run("sample rate out of range", func(t *testing.T) {
		t.Setenv("OTEL_SAMPLE_RATE", "1.5")
		if _, err := ReadTelemetryConfigFromEnv("jugalbandi-bot"); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestLoadDotenvIfPresent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("TEST_DOTENV_KEY=from-file\n"), 0o600); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}
	t.Setenv("TEST_DOTENV_KEY", "")
	if err := os.Unsetenv("TEST_DOTENV_KEY"); err != nil {
		t.Fatalf("unsetenv: %v", err)
	}

	if err := LoadDotenvIfPresent(filepath.Join(dir, "missing.env"), path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := os.Getenv("TEST_DOTENV_KEY"); got != "from-file" {
		t.Errorf("expected from-file, got %q", got)
	}
}
