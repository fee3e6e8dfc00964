package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// DataDir returns the path to the keyprobe data directory.
// - Windows: %APPDATA%\keyprobe
// - Other OS: ~/.keyprobe
func DataDir() string {
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "keyprobe")
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ".keyprobe"
	}
	return filepath.Join(home, ".keyprobe")
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() error {
	return os.MkdirAll(DataDir(), 0o700)
}
