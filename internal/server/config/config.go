package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

// EnvPrefix scopes the stand-in server's environment variables.
const EnvPrefix = "FAKEAPI_"

type Config struct {
	HTTPAddr  string        `koanf:"http_addr"`
	JWTSecret string        `koanf:"jwt_secret"`
	TokenTTL  time.Duration `koanf:"token_ttl"`
	// The superuser account created at start-up.
	AdminEmail    string `koanf:"admin_email"`
	AdminPassword string `koanf:"admin_password"`
	LogLevel      string `koanf:"log_level"`
	// CORSOrigins lists browser origins allowed to call the API; empty disables CORS.
	CORSOrigins []string `koanf:"cors_origins"`
}

func defaults() Config {
	return Config{
		HTTPAddr:      ":8000",
		JWTSecret:     "dev-secret-change",
		TokenTTL:      8 * 24 * time.Hour,
		AdminEmail:    "admin@example.com",
		AdminPassword: "changethis",
		LogLevel:      "info",
		CORSOrigins:   []string{"http://localhost:5173"},
	}
}

// Load layers FAKEAPI_* environment variables over the defaults.
func Load(log zerolog.Logger) (Config, error) {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(defaults(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}
	// Env values arrive as one comma-separated string.
	if s, ok := k.Get("cors_origins").(string); ok {
		var origins []string
		for _, o := range strings.Split(s, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		if err := k.Set("cors_origins", origins); err != nil {
			return Config{}, fmt.Errorf("set cors_origins: %w", err)
		}
	}
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.JWTSecret == defaults().JWTSecret {
		log.Warn().Msg("using development JWT secret; set FAKEAPI_JWT_SECRET")
	}
	return cfg, nil
}
