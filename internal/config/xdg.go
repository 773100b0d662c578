package config

import (
	"os"
	"path/filepath"
)

const (
	appName     = "streamplay"
	historyName = "history.sqlite"
)

// GetConfigDir returns the XDG config directory for streamplay
// ($XDG_CONFIG_HOME/streamplay, default ~/.config/streamplay).
func GetConfigDir() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configHome = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configHome, appName), nil
}

// GetDataDir returns the XDG data directory for streamplay
// ($XDG_DATA_HOME/streamplay, default ~/.local/share/streamplay).
func GetDataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(homeDir, ".local", "share")
	}
	return filepath.Join(dataHome, appName), nil
}

// GetHistoryFile returns the default path of the play-history database.
func GetHistoryFile() (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, historyName), nil
}
