package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// maxSearchDepth bounds the upward repograph.toml search.
const maxSearchDepth = 20

// DiscoverRepoConfig walks upward from startDir looking for repograph.toml.
// The search stops at the first hit, at a .git boundary (the repo root), at
// the filesystem root, or after maxSearchDepth levels. A miss is ("", nil).
func DiscoverRepoConfig(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("abs path for %s: %w", startDir, err)
	}
	if resolved, evalErr := filepath.EvalSymlinks(dir); evalErr == nil {
		dir = resolved
	}

	for depth := 0; depth < maxSearchDepth; depth++ {
		candidate := filepath.Join(dir, "repograph.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return "", nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
	return "", nil
}

// DiscoverGlobalConfig returns the user-level config path
// (XDG_CONFIG_HOME/repograph/config.toml, falling back to
// ~/.config/repograph/config.toml; %APPDATA% on Windows), or "" when the
// file does not exist.
func DiscoverGlobalConfig() (string, error) {
	base, err := globalConfigDir()
	if err != nil {
		return "", fmt.Errorf("determining global config dir: %w", err)
	}
	path := filepath.Join(base, "repograph", "config.toml")
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("stat global config %s: %w", path, err)
	}
	return path, nil
}

func globalConfigDir() (string, error) {
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return appData, nil
		}
		return os.UserConfigDir()
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return xdg, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("user home dir: %w", err)
	}
	return filepath.Join(home, ".config"), nil
}
