// Package config loads the timer configuration from an optional YAML file,
// an optional .env file and TOMATO_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"tomato/internal/core/model"
	xlog "tomato/internal/log"
	"tomato/internal/platform"
)

const (
	appDirName     = "tomato"
	configFileName = "config.yaml"
)

// Config holds application configuration.
type Config struct {
	FocusMinutes  int
	BreakMinutes  int
	LogLevel      string
	Notifications bool
	TickInterval  time.Duration
	ResetToFocus  bool
	ClampAdjust   bool

	// Path is the file the values were read from, empty if none.
	Path string
}

type fileConfig struct {
	FocusMinutes  *int          `yaml:"focus_minutes"`
	BreakMinutes  *int          `yaml:"break_minutes"`
	LogLevel      string        `yaml:"log_level"`
	Notifications *bool         `yaml:"notifications"`
	TickInterval  time.Duration `yaml:"tick_interval"`
	ResetToFocus  bool          `yaml:"reset_to_focus"`
	ClampAdjust   bool          `yaml:"clamp_adjust"`
}

// Default returns the built-in configuration.
func Default() Config {
	settings := model.DefaultSettings()
	return Config{
		FocusMinutes:  settings.FocusMinutes,
		BreakMinutes:  settings.BreakMinutes,
		LogLevel:      "info",
		Notifications: true,
		TickInterval:  time.Second,
	}
}

// Load builds the configuration. An empty path means the per-user config
// file, which may be absent; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()
	logger := xlog.WithComponent("config")

	// A .env next to the binary is optional.
	_ = godotenv.Load()

	explicit := path != ""
	if !explicit {
		resolved, err := ResolvePath()
		if err != nil {
			logger.Warn().Err(err).Msg("no config directory, using defaults")
		}
		path = resolved
	}

	if path != "" {
		rawData, err := os.ReadFile(path)
		switch {
		case err == nil:
			var fileData fileConfig
			if err := yaml.Unmarshal(rawData, &fileData); err != nil {
				return cfg, fmt.Errorf("parse config yaml %s: %w", path, err)
			}
			applyFile(&cfg, fileData, logger)
			cfg.Path = path
		case errors.Is(err, os.ErrNotExist) && !explicit:
		default:
			return cfg, fmt.Errorf("read config file: %w", err)
		}
	}

	applyEnv(&cfg, logger)
	return cfg, nil
}

// ResolvePath returns the per-user config file location.
func ResolvePath() (string, error) {
	configDir, err := platform.ConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return filepath.Join(configDir, appDirName, configFileName), nil
}

// Settings returns the editable part of the configuration.
func (cfg Config) Settings() model.Settings {
	return model.Settings{
		FocusMinutes: cfg.FocusMinutes,
		BreakMinutes: cfg.BreakMinutes,
	}
}

// TimerConfig converts the configured minutes to session lengths.
func (cfg Config) TimerConfig() model.TimerConfig {
	return cfg.Settings().TimerConfig()
}

func applyFile(cfg *Config, fileData fileConfig, logger zerolog.Logger) {
	if fileData.FocusMinutes != nil {
		setFocus(cfg, *fileData.FocusMinutes, "focus_minutes", logger)
	}
	if fileData.BreakMinutes != nil {
		setBreak(cfg, *fileData.BreakMinutes, "break_minutes", logger)
	}
	if fileData.LogLevel != "" {
		cfg.LogLevel = fileData.LogLevel
	}
	if fileData.Notifications != nil {
		cfg.Notifications = *fileData.Notifications
	}
	if fileData.TickInterval > 0 {
		cfg.TickInterval = fileData.TickInterval
	}
	cfg.ResetToFocus = fileData.ResetToFocus
	cfg.ClampAdjust = fileData.ClampAdjust
}

func applyEnv(cfg *Config, logger zerolog.Logger) {
	if value, ok := os.LookupEnv("TOMATO_FOCUS_MINUTES"); ok {
		if minutes, err := strconv.Atoi(value); err == nil {
			setFocus(cfg, minutes, "TOMATO_FOCUS_MINUTES", logger)
		} else {
			logger.Warn().Str("value", value).Msg("ignoring TOMATO_FOCUS_MINUTES")
		}
	}
	if value, ok := os.LookupEnv("TOMATO_BREAK_MINUTES"); ok {
		if minutes, err := strconv.Atoi(value); err == nil {
			setBreak(cfg, minutes, "TOMATO_BREAK_MINUTES", logger)
		} else {
			logger.Warn().Str("value", value).Msg("ignoring TOMATO_BREAK_MINUTES")
		}
	}
	if value := os.Getenv("TOMATO_LOG_LEVEL"); value != "" {
		cfg.LogLevel = value
	}
	if value, ok := os.LookupEnv("TOMATO_NOTIFICATIONS"); ok {
		if enabled, err := strconv.ParseBool(value); err == nil {
			cfg.Notifications = enabled
		} else {
			logger.Warn().Str("value", value).Msg("ignoring TOMATO_NOTIFICATIONS")
		}
	}
}

func setFocus(cfg *Config, minutes int, source string, logger zerolog.Logger) {
	if !model.InRange(minutes) || minutes == 0 {
		logger.Warn().Int("minutes", minutes).Str("source", source).Msg("focus minutes out of range, keeping previous value")
		return
	}
	cfg.FocusMinutes = minutes
}

func setBreak(cfg *Config, minutes int, source string, logger zerolog.Logger) {
	if !model.InRange(minutes) {
		logger.Warn().Int("minutes", minutes).Str("source", source).Msg("break minutes out of range, keeping previous value")
		return
	}
	cfg.BreakMinutes = minutes
}
