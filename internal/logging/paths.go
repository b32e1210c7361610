package logging

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultLogDir returns ~/.htmldicts/logs, or a temp-dir fallback.
func DefaultLogDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".htmldicts", "logs")
	}
	return filepath.Join(home, ".htmldicts", "logs")
}

// DefaultLogPath returns the debug log file.
func DefaultLogPath() string {
	return filepath.Join(DefaultLogDir(), "htmldicts.log")
}

// FindLogFile returns explicit if it exists, else the default log file.
func FindLogFile(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return explicit, nil
		}
		return "", fmt.Errorf("log file not found: %s", explicit)
	}

	path := DefaultLogPath()
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	return "", fmt.Errorf("no log file found at %s; run a command with --debug first", path)
}
