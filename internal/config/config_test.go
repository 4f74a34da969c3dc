package config

import (
	"strings"
	"testing"
)

func validConfig() Config {
	return Config{
		HTTP: HTTPConfig{Port: 8080},
		Model: ModelConfig{
			APIKey: "test-key",
			Name:   "gpt-4o-mini",
		},
		RateLimit: RateLimitConfig{Store: "memory"},
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := validConfig()
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("read timeout = %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("write timeout = %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Model.Provider != "openai" {
		t.Errorf("provider = %q", cfg.Model.Provider)
	}
	if cfg.Model.Temperature != 0.2 {
		t.Errorf("temperature = %v", cfg.Model.Temperature)
	}
	if cfg.Model.MaxOutputTokens != 2000 {
		t.Errorf("max output tokens = %d", cfg.Model.MaxOutputTokens)
	}
	if cfg.RateLimit.MaxRequests != 10 || cfg.RateLimit.WindowSec != 60 {
		t.Errorf("rate limit defaults = %d/%ds", cfg.RateLimit.MaxRequests, cfg.RateLimit.WindowSec)
	}
	if cfg.RateLimit.KeyPrefix != "scout:ratelimit:" {
		t.Errorf("key prefix = %q", cfg.RateLimit.KeyPrefix)
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := validConfig()
	cfg.RateLimit.MaxRequests = 3
	cfg.RateLimit.WindowSec = 30
	cfg.ApplyDefaults()

	if cfg.RateLimit.MaxRequests != 3 || cfg.RateLimit.WindowSec != 30 {
		t.Errorf("explicit values overridden: %d/%ds", cfg.RateLimit.MaxRequests, cfg.RateLimit.WindowSec)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"port zero", func(c *Config) { c.HTTP.Port = 0 }, "http.port"},
		{"port too large", func(c *Config) { c.HTTP.Port = 70000 }, "http.port"},
		{"missing api key", func(c *Config) { c.Model.APIKey = "" }, "model.api_key"},
		{"missing model name", func(c *Config) { c.Model.Name = "" }, "model.name"},
		{"unknown store", func(c *Config) { c.RateLimit.Store = "memcached" }, "rate_limit.store"},
		{"redis without addrs", func(c *Config) { c.RateLimit.Store = "redis" }, "rate_limit.addrs"},
		{"redis with addrs", func(c *Config) {
			c.RateLimit.Store = "redis"
			c.RateLimit.Addrs = []string{"localhost:6379"}
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, expected mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("SCOUT_TEST_KEY", "sk-abc123")

	data := expandEnvVars([]byte("api_key: ${SCOUT_TEST_KEY}\nbase_url: ${SCOUT_TEST_URL:-https://api.openai.com/v1}"))
	got := string(data)

	if !strings.Contains(got, "api_key: sk-abc123") {
		t.Errorf("env var not expanded: %s", got)
	}
	if !strings.Contains(got, "base_url: https://api.openai.com/v1") {
		t.Errorf("default not applied: %s", got)
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if got := GetEnv(); got != "local" {
		t.Errorf("GetEnv() = %q, expected local", got)
	}

	t.Setenv("ENV", "prod")
	if got := GetEnv(); got != "prod" {
		t.Errorf("GetEnv() = %q, expected prod", got)
	}
}
