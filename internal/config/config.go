// Package config loads recipedesk settings from defaults, an optional
// recipedesk.{yaml,toml} file, RECIPEDESK_* environment variables and
// command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/hammamikhairi/recipedesk/internal/logger"
)

// EnvPrefix prefixes every environment override, e.g. RECIPEDESK_API_BASE_URL.
const EnvPrefix = "RECIPEDESK"

// Config keys, usable with viper and flag binding.
const (
	KeyBaseURL = "api.base_url"
	KeyTimeout = "api.timeout_seconds"
	KeyLevel   = "log.level"
	KeyLogFile = "log.file"
	KeyAddr    = "serve.addr"
)

// API contains the recipe server connection settings.
type API struct {
	BaseURL        string `mapstructure:"base_url" toml:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" toml:"timeout_seconds"`
}

// Log contains logging settings.
type Log struct {
	Level string `mapstructure:"level" toml:"level"`
	File  string `mapstructure:"file" toml:"file"`
}

// Serve contains settings of the development backend.
type Serve struct {
	Addr string `mapstructure:"addr" toml:"addr"`
}

// Config is the full application configuration.
type Config struct {
	API   API   `mapstructure:"api" toml:"api"`
	Log   Log   `mapstructure:"log" toml:"log"`
	Serve Serve `mapstructure:"serve" toml:"serve"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		API:   API{BaseURL: "http://localhost:8000", TimeoutSeconds: 30},
		Log:   Log{Level: "normal", File: ".recipedesk/recipedesk.log"},
		Serve: Serve{Addr: "localhost:8000"},
	}
}

// Timeout returns the HTTP timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// LogLevel parses the configured log level.
func (c Config) LogLevel() (logger.Level, error) {
	return logger.ParseLevel(c.Log.Level)
}

// Validate checks that the values are usable.
func (c Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("config: %s: %w", KeyBaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("config: %s must be an http(s) URL, got %q", KeyBaseURL, c.API.BaseURL)
	}
	if c.API.TimeoutSeconds <= 0 {
		return fmt.Errorf("config: %s must be positive, got %d", KeyTimeout, c.API.TimeoutSeconds)
	}
	if _, err := c.LogLevel(); err != nil {
		return fmt.Errorf("config: %s: %w", KeyLevel, err)
	}
	return nil
}

// NewViper returns a viper instance with defaults and environment
// overrides registered. A .env file in the working directory is loaded
// into the environment first, without overriding variables already set.
func NewViper() *viper.Viper {
	_ = godotenv.Load()

	d := Default()
	v := viper.New()
	v.SetDefault(KeyBaseURL, d.API.BaseURL)
	v.SetDefault(KeyTimeout, d.API.TimeoutSeconds)
	v.SetDefault(KeyLevel, d.Log.Level)
	v.SetDefault(KeyLogFile, d.Log.File)
	v.SetDefault(KeyAddr, d.Serve.Addr)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file (path, or recipedesk.* in the usual
// locations when path is empty) into v and decodes the result. A missing
// file is not an error unless path was given explicitly.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("recipedesk")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "recipedesk"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Source reports which file the configuration came from, or "" when only
// defaults and environment were used.
func Source(v *viper.Viper) string { return v.ConfigFileUsed() }

// SampleTOML renders cfg as a TOML config file.
func SampleTOML(cfg Config) ([]byte, error) {
	out, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: encode toml: %w", err)
	}
	header := "# recipedesk configuration\n# Environment overrides: " + EnvPrefix + "_API_BASE_URL, " + EnvPrefix + "_LOG_LEVEL, ...\n\n"
	return append([]byte(header), out...), nil
}
