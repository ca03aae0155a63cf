// Package config loads qrstudio settings from defaults, an optional YAML file,
// a .env file and the process environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/cristianadrielbraun/qrstudio/internal/composer"
)

var (
	// ErrParsingConfig is returned when the YAML file or environment cannot be parsed.
	ErrParsingConfig = errors.New("failed to parse configuration")
	// ErrInvalidConfig is returned when a parsed value is out of range.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Style holds the default generation settings offered to the form and CLI.
type Style struct {
	Size            int    `yaml:"size" env:"QR_DEFAULT_SIZE"`
	ErrorCorrection string `yaml:"error_correction" env:"QR_DEFAULT_EC"`
	Foreground      string `yaml:"foreground" env:"QR_DEFAULT_FG"`
	Background      string `yaml:"background" env:"QR_DEFAULT_BG"`
	Style           string `yaml:"style" env:"QR_DEFAULT_STYLE"`
	Frames          int    `yaml:"animation_frames" env:"QR_ANIMATION_FRAMES"`
	Speed           int    `yaml:"animation_speed" env:"QR_ANIMATION_SPEED"`
}

// Config holds all application configuration values.
type Config struct {
	Port           int           `yaml:"port" env:"PORT"`
	LogLevel       string        `yaml:"log_level" env:"LOG_LEVEL"`
	LogFormat      string        `yaml:"log_format" env:"LOG_FORMAT"`
	MaxUploadBytes int64         `yaml:"max_upload_bytes" env:"MAX_UPLOAD_BYTES"`
	ReadTimeout    time.Duration `yaml:"read_timeout" env:"READ_TIMEOUT"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env:"WRITE_TIMEOUT"`
	Style          Style         `yaml:"style"`
}

// Size bounds accepted from users.
const (
	MinSize = 100
	MaxSize = 400
)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Port:           8080,
		LogLevel:       "info",
		LogFormat:      "text",
		MaxUploadBytes: 10 << 20,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   30 * time.Second,
		Style: Style{
			Size:            200,
			ErrorCorrection: "L",
			Foreground:      "#000000",
			Background:      "#FFFFFF",
			Style:           string(composer.StyleClassic),
			Frames:          composer.DefaultFrameCount,
			Speed:           composer.DefaultSpeed,
		},
	}
}

// Load builds the configuration. path may be empty or point to a missing
// file, in which case only defaults and the environment are used.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, errors.Join(ErrParsingConfig, fmt.Errorf("%s: %w", path, err))
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	// The .env file is optional.
	_ = godotenv.Load()

	if err := env.Parse(cfg); err != nil {
		return nil, errors.Join(ErrParsingConfig, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d", ErrInvalidConfig, c.Port)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("%w: max_upload_bytes %d", ErrInvalidConfig, c.MaxUploadBytes)
	}
	if _, err := c.Style.StyleConfig(); err != nil {
		return errors.Join(ErrInvalidConfig, err)
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// SlogLevel maps LogLevel onto a slog.Level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger returns a text or JSON slog logger writing to stderr.
func (c *Config) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.SlogLevel()}
	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// StyleConfig converts the defaults into a composer.StyleConfig.
func (s Style) StyleConfig() (composer.StyleConfig, error) {
	def := composer.DefaultStyle()

	if s.Size < MinSize || s.Size > MaxSize {
		return def, fmt.Errorf("%w: size %d outside %d..%d", composer.ErrInvalidSize, s.Size, MinSize, MaxSize)
	}
	ec, err := composer.ParseECLevel(s.ErrorCorrection)
	if err != nil {
		return def, err
	}
	fg, err := composer.ParseHexColor(s.Foreground, def.Foreground)
	if err != nil {
		return def, err
	}
	bg, err := composer.ParseHexColor(s.Background, def.Background)
	if err != nil {
		return def, err
	}
	st, err := composer.ParseStyle(s.Style)
	if err != nil {
		return def, err
	}
	return composer.StyleConfig{
		Size:            s.Size,
		ErrorCorrection: ec,
		Foreground:      fg,
		Background:      bg,
		Style:           st,
	}, nil
}
