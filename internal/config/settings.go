package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Storage backends
const (
	StorageFile   = "file"
	StorageSQLite = "sqlite"
)

// Defaults applied when neither flags, env nor settings.json say otherwise
const (
	DefaultCardioMinutes           = 15
	DefaultGeneratorTimeoutSeconds = 20
	DefaultMetricsAddr             = "127.0.0.1:9464"
	DefaultPlannedMinutes          = 60
	DefaultSSHHost                 = "localhost"
	DefaultSSHPort                 = 23234
	DefaultStorageBackend          = StorageFile
)

// Settings represents the structure of $METROGYM_HOME/settings.json
type Settings struct {
	Debug                   *bool  `json:"debug,omitempty"`
	DefaultCardioMinutes    *int   `json:"default_cardio_minutes,omitempty"`
	DefaultPlannedMinutes   *int   `json:"default_planned_minutes,omitempty"`
	GeneratorTimeoutSeconds *int   `json:"generator_timeout_seconds,omitempty"`
	GeneratorURL            string `json:"generator_url,omitempty"`
	MaxLogFiles             *int   `json:"max_log_files,omitempty"`
	MetricsAddr             string `json:"metrics_addr,omitempty"`
	SSHHost                 string `json:"ssh_host,omitempty"`
	SSHPort                 *int   `json:"ssh_port,omitempty"`
	StorageBackend          string `json:"storage_backend,omitempty"`
}

// Validate checks values that cannot be fixed up silently
func (s *Settings) Validate() error {
	switch s.StorageBackend {
	case "", StorageFile, StorageSQLite:
	default:
		return fmt.Errorf("storage_backend must be %q or %q, got %q", StorageFile, StorageSQLite, s.StorageBackend)
	}
	if s.GeneratorTimeoutSeconds != nil && *s.GeneratorTimeoutSeconds <= 0 {
		return fmt.Errorf("generator_timeout_seconds must be positive, got %d", *s.GeneratorTimeoutSeconds)
	}
	if s.DefaultPlannedMinutes != nil && *s.DefaultPlannedMinutes <= 0 {
		return fmt.Errorf("default_planned_minutes must be positive, got %d", *s.DefaultPlannedMinutes)
	}
	if s.DefaultCardioMinutes != nil && *s.DefaultCardioMinutes < 0 {
		return fmt.Errorf("default_cardio_minutes must not be negative, got %d", *s.DefaultCardioMinutes)
	}
	if s.SSHPort != nil && (*s.SSHPort <= 0 || *s.SSHPort > 65535) {
		return fmt.Errorf("ssh_port out of range: %d", *s.SSHPort)
	}
	return nil
}

// LoadSettings loads settings from $METROGYM_HOME/settings.json.
// Returns empty Settings if the file doesn't exist (not an error).
func LoadSettings() (*Settings, error) {
	path := GetSettingsPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("invalid settings.json: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings.json: %w", err)
	}

	return &settings, nil
}

// SaveSettings saves settings to $METROGYM_HOME/settings.json
func SaveSettings(settings *Settings) error {
	path := GetSettingsPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}
