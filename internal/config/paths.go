package config

import (
	"os"
	"path/filepath"
)

const (
	// AppDirName is the per-user configuration directory name.
	AppDirName = "cli-notifier"
	// FileName is the settings file name searched for during discovery.
	FileName = "config.toml"
)

// UserConfigDir returns the per-user configuration directory.
// $XDG_CONFIG_HOME/cli-notifier when XDG_CONFIG_HOME is set, otherwise
// ~/.config/cli-notifier on every platform.
func UserConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppDirName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppDirName), nil
}

// UserConfigPath returns the full path of the per-user settings file.
func UserConfigPath() (string, error) {
	dir, err := UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// ProjectConfigPath returns the settings path looked up in the working directory.
func ProjectConfigPath() string {
	return FileName
}

// SearchPaths returns the discovery order: user directory first, then the
// working directory. The user entry is skipped when no home can be resolved.
func SearchPaths() []string {
	paths := make([]string, 0, 2)
	if userPath, err := UserConfigPath(); err == nil {
		paths = append(paths, userPath)
	}
	return append(paths, ProjectConfigPath())
}

// Discover returns the first search path that exists, or "" if none do.
func Discover(paths []string) string {
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}
