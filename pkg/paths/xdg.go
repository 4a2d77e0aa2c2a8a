// Package paths resolves the XDG directories git-log-pretty reads and
// writes.
//
// Resolution order:
// 1. XDG env vars → $XDG_*_HOME/git-log-pretty
// 2. Platform defaults → ~/.config/git-log-pretty, ~/.local/state/git-log-pretty
package paths

import (
	"os"
	"path/filepath"
)

// AppName is the directory name used under each XDG base directory.
const AppName = "git-log-pretty"

func baseDir(env string, fallback ...string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(append([]string{homeDir}, fallback...)...)
	}
	return ""
}

// ConfigDir holds the global config.yml. Empty when no home directory
// can be found.
func ConfigDir() string {
	base := baseDir("XDG_CONFIG_HOME", ".config")
	if base == "" {
		return ""
	}
	return filepath.Join(base, AppName)
}

// StateDir holds the optional log file.
func StateDir() string {
	base := baseDir("XDG_STATE_HOME", ".local", "state")
	if base == "" {
		return ""
	}
	return filepath.Join(base, AppName)
}
