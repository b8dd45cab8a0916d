package config

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestFromViperDefaults(t *testing.T) {
	v := viper.New()
	v.Set("auth.jwt_secret", "test-secret")

	cfg, err := FromViper(v)
	if err != nil {
		t.Fatalf("FromViper: %v", err)
	}

	if cfg.Server.Port != 8000 {
		t.Errorf("port = %d, want 8000", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("driver = %q, want sqlite", cfg.Database.Driver)
	}
	if got := cfg.TokenTTL(); got != 24*time.Hour {
		t.Errorf("token ttl = %v, want 24h", got)
	}
	if got := cfg.ShutdownTimeout(); got != 30*time.Second {
		t.Errorf("shutdown timeout = %v, want 30s", got)
	}
}

func TestFromViperMissingSecret(t *testing.T) {
	v := viper.New()

	_, err := FromViper(v)
	if err == nil {
		t.Fatal("expected error when jwt secret is unset")
	}
	if !strings.Contains(err.Error(), "jwt_secret") {
		t.Errorf("error should name the missing key, got: %v", err)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server: ServerConfig{Port: 8000, ShutdownTimeout: "30s"},
			Auth:   AuthConfig{JWTSecret: "s", TokenTTL: "1h"},
			Database: DatabaseConfig{
				Driver: "sqlite",
			},
		}
	}

	if err := base().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	c := base()
	c.Auth.TokenTTL = "soon"
	if err := c.Validate(); err == nil {
		t.Error("expected error for malformed token_ttl")
	}

	c = base()
	c.Server.Port = 0
	if err := c.Validate(); err == nil {
		t.Error("expected error for port 0")
	}

	c = base()
	c.Database.Driver = "oracle"
	if err := c.Validate(); err == nil {
		t.Error("expected error for unsupported driver")
	}
}
