// Package config loads the moviecat CLI settings. Sources are layered in
// order: built-in defaults, an optional YAML file, MOVIECAT_* environment
// variables. Flags are applied by the caller on top.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/ljxowen/movie-recommender/internal/client/session"
)

const (
	EnvPrefix       = "MOVIECAT_"
	EnvConfigFile   = "MOVIECAT_CONFIG"
	DefaultFileName = ".moviecat.yaml"
)

type Config struct {
	ServerURL string        `koanf:"server_url"`
	TokenFile string        `koanf:"token_file"`
	Timeout   time.Duration `koanf:"timeout"`
	Log       Log           `koanf:"log"`
	Metrics   Metrics       `koanf:"metrics"`
}

type Log struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Metrics is disabled while Pushgateway is empty.
type Metrics struct {
	Pushgateway string `koanf:"pushgateway"`
	Job         string `koanf:"job"`
}

func Defaults() Config {
	return Config{
		ServerURL: "http://localhost:8000",
		TokenFile: session.DefaultPath(),
		Timeout:   30 * time.Second,
		Log:       Log{Level: "warn", Format: "console"},
		Metrics:   Metrics{Job: "moviecat"},
	}
}

// Load reads the configuration. path overrides the file location; when it
// is empty MOVIECAT_CONFIG and then ~/.moviecat.yaml are tried. A missing
// default file is not an error, a missing explicit file is.
func Load(path string) (Config, error) {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(Defaults(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	explicit := path != ""
	if !explicit {
		if p := os.Getenv(EnvConfigFile); p != "" {
			path, explicit = p, true
		} else if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, DefaultFileName)
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return Config{}, fmt.Errorf("load config file %s: %w", path, err)
			}
		}
	}

	// MOVIECAT_LOG_LEVEL -> log.level, MOVIECAT_SERVER_URL -> server_url.
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	for _, section := range []string{"log_", "metrics_"} {
		if strings.HasPrefix(key, section) {
			return strings.TrimSuffix(section, "_") + "." + strings.TrimPrefix(key, section)
		}
	}
	return key
}
