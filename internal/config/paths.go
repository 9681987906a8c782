package config

import (
	"os"
	"path/filepath"
)

// EnvHome overrides the data directory
const EnvHome = "METROGYM_HOME"

// GetHome returns $METROGYM_HOME or ~/.metrogym
func GetHome() string {
	home := os.Getenv(EnvHome)
	if home == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".metrogym"
		}
		return filepath.Join(homeDir, ".metrogym")
	}
	return ExpandPath(home)
}

// GetDataDir returns $METROGYM_HOME/data, where the file store keeps one JSON document per key
func GetDataDir() string {
	return filepath.Join(GetHome(), "data")
}

// GetDBPath returns $METROGYM_HOME/metrogym.db
func GetDBPath() string {
	return filepath.Join(GetHome(), "metrogym.db")
}

// GetSettingsPath returns $METROGYM_HOME/settings.json
func GetSettingsPath() string {
	return filepath.Join(GetHome(), "settings.json")
}

// GetSSHDir returns $METROGYM_HOME/ssh, holding the server host key
func GetSSHDir() string {
	return filepath.Join(GetHome(), "ssh")
}

// ExpandPath expands ~ to home directory
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			if len(path) == 1 {
				return homeDir
			}
			return filepath.Join(homeDir, path[1:])
		}
	}
	return path
}
