package config

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestLoadDefaultsAndEnv(t *testing.T) {
	cfg, err := Load(zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.HTTPAddr == "" || cfg.JWTSecret == "" || cfg.AdminEmail == "" || cfg.TokenTTL == 0 {
		t.Fatalf("empty config fields: %+v", cfg)
	}

	t.Setenv("FAKEAPI_HTTP_ADDR", ":9999")
	t.Setenv("FAKEAPI_JWT_SECRET", "secret")
	t.Setenv("FAKEAPI_TOKEN_TTL", "1h")
	cfg, err = Load(zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.HTTPAddr != ":9999" || cfg.JWTSecret != "secret" || cfg.TokenTTL != time.Hour {
		t.Fatalf("env not applied: %+v", cfg)
	}
}

func TestLoadCORSOriginsFromEnv(t *testing.T) {
	t.Setenv("FAKEAPI_CORS_ORIGINS", "http://a.test,http://b.test")
	cfg, err := Load(zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b.test" {
		t.Fatalf("cors origins: %v", cfg.CORSOrigins)
	}
}
