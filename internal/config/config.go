package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything moodlog needs to reach the backend and run the UI.
type Config struct {
	APIURL         string
	SessionPath    string
	LogFile        string
	LogLevel       string
	LogFormat      string
	Theme          string
	AttachToken    bool
	RequestIDs     bool
	RequestTimeout time.Duration
}

const (
	defaultConfigPath  = "~/.config/moodlog/config.toml"
	defaultSessionPath = "~/.config/moodlog/session.toml"
	defaultLogFile     = "~/.local/share/moodlog/moodlog.log"
	defaultAPIURL      = "http://localhost:8000"
	defaultLogLevel    = "info"
	defaultLogFormat   = "json"
	defaultTheme       = "Nightfox"

	// APIURLEnv overrides api_url from the config file.
	APIURLEnv = "MOODLOG_API_URL"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIURL:      defaultAPIURL,
		SessionPath: mustExpand(defaultSessionPath),
		LogFile:     mustExpand(defaultLogFile),
		LogLevel:    defaultLogLevel,
		LogFormat:   defaultLogFormat,
		Theme:       defaultTheme,
		AttachToken: true,
		RequestIDs:  true,
	}
}

type rawConfig struct {
	APIURL         string `toml:"api_url"`
	SessionPath    string `toml:"session_path"`
	LogFile        string `toml:"log_file"`
	LogLevel       string `toml:"log_level"`
	LogFormat      string `toml:"log_format"`
	Theme          string `toml:"theme"`
	AttachToken    *bool  `toml:"attach_token"`
	RequestIDs     *bool  `toml:"request_ids"`
	RequestTimeout string `toml:"request_timeout"`
}

// Load locates and parses the moodlog config, falling back to defaults when missing.
// The MOODLOG_API_URL environment variable wins over the file.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(raw.SessionPath); v != "" {
		cfg.SessionPath = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := strings.TrimSpace(raw.LogFormat); v != "" {
		cfg.LogFormat = strings.ToLower(v)
	}
	if v := strings.TrimSpace(raw.Theme); v != "" {
		cfg.Theme = v
	}
	if raw.AttachToken != nil {
		cfg.AttachToken = *raw.AttachToken
	}
	if raw.RequestIDs != nil {
		cfg.RequestIDs = *raw.RequestIDs
	}
	if v := strings.TrimSpace(raw.RequestTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse request_timeout %q: %w", v, err)
		}
		if d < 0 {
			return Config{}, fmt.Errorf("request_timeout must not be negative")
		}
		cfg.RequestTimeout = d
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v, ok := os.LookupEnv(APIURLEnv); ok && strings.TrimSpace(v) != "" {
		cfg.APIURL = strings.TrimSpace(v)
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
