package prefs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Settings holds UI-only settings kept in ~/.config/pawpal/settings.toml.
// Search preferences live in the kv-backed stores instead.
type Settings struct {
	Theme        string `toml:"theme"`
	ShowWhatsNew bool   `toml:"show_whats_new"`
}

const (
	defaultSettingsPath = "~/.config/pawpal/settings.toml"
	defaultTheme        = "Nightfox"
)

// DefaultSettings returns the settings used when no file exists.
func DefaultSettings() Settings {
	return Settings{Theme: defaultTheme, ShowWhatsNew: true}
}

// DefaultSettingsPath returns the default settings file path.
func DefaultSettingsPath() string {
	return defaultSettingsPath
}

// LoadSettings reads settings from path, falling back to defaults when the
// file is missing or unreadable.
func LoadSettings(path string) Settings {
	settings := DefaultSettings()

	resolved, err := resolvePath(path)
	if err != nil {
		return settings
	}

	file, err := os.Open(resolved)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger().Warn("open settings failed", "path", resolved, "error", err)
		}
		return settings
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return settings // Graceful degradation
	}

	if err := toml.Unmarshal(bytes, &settings); err != nil {
		logger().Warn("parse settings failed", "path", resolved, "error", err)
		return DefaultSettings()
	}

	if strings.TrimSpace(settings.Theme) == "" {
		settings.Theme = defaultTheme
	}

	return settings
}

// SaveSettings writes settings to path, creating directories as needed.
func SaveSettings(path string, s Settings) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}

	bytes, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultSettingsPath)
	}
	return expandPath(path)
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
