package configfile

import (
	"os"
	"path/filepath"
	"runtime"
)

const appDir = "libris"

// ConfigDir is <user config dir>/libris.
func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, appDir), nil
}

// StateDir is where the cache and logs live: $XDG_STATE_HOME/libris,
// ~/.local/state/libris on other unix systems, the user cache dir elsewhere.
func StateDir() (string, error) {
	if v := os.Getenv("XDG_STATE_HOME"); v != "" {
		return filepath.Join(v, appDir), nil
	}
	if runtime.GOOS != "windows" && runtime.GOOS != "darwin" {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, ".local", "state", appDir), nil
		}
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, appDir), nil
}
