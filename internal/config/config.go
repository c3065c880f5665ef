package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Storage backends for the preference database.
const (
	StorageBolt   = "bolt"
	StorageSQLite = "sqlite"
)

// Config holds the application settings read from config.toml.
type Config struct {
	APIURL                string
	ClientID              string
	ClientSecret          string
	DataDir               string
	Storage               string
	PollSeconds           int
	RequestTimeoutSeconds int
	LogLevel              string
}

const (
	defaultConfigPath     = "~/.config/pawpal/config.toml"
	defaultAPIURL         = "https://api.petfinder.com"
	defaultDataDir        = "~/.local/share/pawpal"
	defaultPollSeconds    = 60
	defaultRequestTimeout = 10
	defaultLogLevel       = "info"

	envClientID     = "PAWPAL_CLIENT_ID"
	envClientSecret = "PAWPAL_CLIENT_SECRET"
	envAPIURL       = "PAWPAL_API_URL"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIURL:                defaultAPIURL,
		DataDir:               mustExpand(defaultDataDir),
		Storage:               StorageBolt,
		PollSeconds:           defaultPollSeconds,
		RequestTimeoutSeconds: defaultRequestTimeout,
		LogLevel:              defaultLogLevel,
	}
}

// Load locates and parses the config, falling back to defaults when missing.
// Credentials and the API URL may be overridden from the environment.
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

	var raw struct {
		APIURL                string `toml:"api_url"`
		ClientID              string `toml:"client_id"`
		ClientSecret          string `toml:"client_secret"`
		DataDir               string `toml:"data_dir"`
		Storage               string `toml:"storage"`
		PollSeconds           int    `toml:"poll_seconds"`
		RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
		LogLevel              string `toml:"log_level"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = v
	}
	cfg.ClientID = strings.TrimSpace(raw.ClientID)
	cfg.ClientSecret = strings.TrimSpace(raw.ClientSecret)
	if v := strings.TrimSpace(raw.DataDir); v != "" {
		cfg.DataDir = mustExpand(v)
	}
	if v := strings.ToLower(strings.TrimSpace(raw.Storage)); v != "" {
		if v != StorageBolt && v != StorageSQLite {
			return Config{}, fmt.Errorf("invalid storage %q (want bolt or sqlite)", raw.Storage)
		}
		cfg.Storage = v
	}
	if raw.PollSeconds > 0 {
		cfg.PollSeconds = raw.PollSeconds
	}
	if raw.RequestTimeoutSeconds > 0 {
		cfg.RequestTimeoutSeconds = raw.RequestTimeoutSeconds
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = v
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(envClientID)); v != "" {
		cfg.ClientID = v
	}
	if v := strings.TrimSpace(os.Getenv(envClientSecret)); v != "" {
		cfg.ClientSecret = v
	}
	if v := strings.TrimSpace(os.Getenv(envAPIURL)); v != "" {
		cfg.APIURL = v
	}
}

// HasCredentials reports whether an API client id is configured.
func (c Config) HasCredentials() bool {
	return c.ClientID != ""
}

// DatabasePath returns the preference database file for the chosen backend.
func (c Config) DatabasePath() string {
	name := "pawpal.db"
	if c.Storage == StorageSQLite {
		name = "pawpal.sqlite"
	}
	return filepath.Join(c.dataDir(), name)
}

// LogPath returns the application log file.
func (c Config) LogPath() string {
	return filepath.Join(c.dataDir(), "pawpal.log")
}

// PollInterval returns the status check cadence.
func (c Config) PollInterval() time.Duration {
	if c.PollSeconds <= 0 {
		return defaultPollSeconds * time.Second
	}
	return time.Duration(c.PollSeconds) * time.Second
}

// RequestTimeout returns the per-request API timeout.
func (c Config) RequestTimeout() time.Duration {
	if c.RequestTimeoutSeconds <= 0 {
		return defaultRequestTimeout * time.Second
	}
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// SlogLevel maps LogLevel to a slog level; unknown names yield info.
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo
	}
	return level
}

func (c Config) dataDir() string {
	if strings.TrimSpace(c.DataDir) == "" {
		return mustExpand(defaultDataDir)
	}
	return c.DataDir
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return mustExpand(defaultConfigPath)
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
