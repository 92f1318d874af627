// Package paths provides centralized path handling for expando.
// It implements XDG Base Directory specification compliance and
// provides a consistent API for all path operations in the codebase.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for expando
	EnvConfigDir = "EXPANDO_CONFIG_DIR"

	// EnvDataDir overrides the XDG data directory for expando
	EnvDataDir = "EXPANDO_DATA_DIR"

	// EnvStateDir overrides the XDG state directory for expando
	EnvStateDir = "EXPANDO_STATE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
const (
	// AppDirName is the directory name for expando-specific files
	AppDirName = "expando"

	// ConfigFileName is the name of the user configuration file
	ConfigFileName = "config.toml"

	// LogFileName is the name of the log file
	LogFileName = "expando.log"
)

// ConfigDir returns the directory holding the user configuration,
// honoring EXPANDO_CONFIG_DIR before falling back to XDG.
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// ConfigFilePath returns the full path of the user configuration file.
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// DataDir returns the directory for generated data such as man pages.
func DataDir() string {
	if dir := os.Getenv(EnvDataDir); dir != "" {
		return dir
	}
	return filepath.Join(xdg.DataHome, AppDirName)
}

// StateDir returns the directory for mutable state such as log files.
func StateDir() string {
	if dir := os.Getenv(EnvStateDir); dir != "" {
		return dir
	}
	return filepath.Join(xdg.StateHome, AppDirName)
}

// LogFilePath returns the full path of the log file.
func LogFilePath() string {
	return filepath.Join(StateDir(), LogFileName)
}

// PrettyPath collapses the home directory prefix of path to "~".
// Paths outside the home directory are returned unchanged.
func PrettyPath(path string) string {
	home := os.Getenv(EnvHome)
	if home == "" {
		var err error
		home, err = os.UserHomeDir()
		if err != nil {
			return path
		}
	}
	home = strings.TrimSuffix(home, string(filepath.Separator))
	if home == "" || !strings.HasPrefix(path, home) {
		return path
	}
	rest := path[len(home):]
	if rest != "" && rest[0] != filepath.Separator {
		return path
	}
	return "~" + rest
}
