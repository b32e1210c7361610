package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	// MaxBackups is the number of user config backups kept.
	MaxBackups = 3

	// BackupSuffix precedes the timestamp in backup file names.
	BackupSuffix = ".bak"
)

// InitUserConfig writes the defaults to the user config file. An existing
// file is left alone unless force is set, in which case it is backed up
// first. Returns the backup path, if any.
func InitUserConfig(force bool) (string, error) {
	configPath := GetUserConfigPath()

	var backupPath string
	if UserConfigExists() {
		if !force {
			return "", fmt.Errorf("config already exists at %s (use --force to overwrite)", configPath)
		}
		var err error
		if backupPath, err = BackupUserConfig(); err != nil {
			return "", err
		}
	}

	if err := NewConfig().WriteYAML(configPath); err != nil {
		return "", err
	}
	return backupPath, nil
}

// BackupUserConfig copies the user config to a timestamped backup and prunes
// old backups. Returns "" when there is no user config.
func BackupUserConfig() (string, error) {
	configPath := GetUserConfigPath()
	if !UserConfigExists() {
		return "", nil
	}

	timestamp := time.Now().Format("20060102-150405.000")
	backupPath := fmt.Sprintf("%s%s.%s", configPath, BackupSuffix, timestamp)

	data, err := os.ReadFile(configPath)
	if err != nil {
		return "", fmt.Errorf("failed to read config for backup: %w", err)
	}
	if err := os.WriteFile(backupPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}

	if err := cleanupOldBackups(); err != nil {
		slog.Warn("config_backup_cleanup_failed", slog.String("error", err.Error()))
	}
	return backupPath, nil
}

// ListUserConfigBackups returns backup files, newest first.
func ListUserConfigBackups() ([]string, error) {
	configPath := GetUserConfigPath()
	configDir := filepath.Dir(configPath)

	entries, err := os.ReadDir(configDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list config directory: %w", err)
	}

	var backups []string
	prefix := filepath.Base(configPath) + BackupSuffix + "."
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasPrefix(entry.Name(), prefix) {
			backups = append(backups, filepath.Join(configDir, entry.Name()))
		}
	}

	// Timestamps sort lexically.
	sort.Sort(sort.Reverse(sort.StringSlice(backups)))
	return backups, nil
}

func cleanupOldBackups() error {
	backups, err := ListUserConfigBackups()
	if err != nil {
		return err
	}
	if len(backups) <= MaxBackups {
		return nil
	}
	for _, backup := range backups[MaxBackups:] {
		_ = os.Remove(backup)
	}
	return nil
}

// RestoreUserConfig replaces the user config with backupPath after backing
// up the current one.
func RestoreUserConfig(backupPath string) error {
	data, err := os.ReadFile(backupPath)
	if err != nil {
		return fmt.Errorf("backup file not found: %w", err)
	}

	if _, err := BackupUserConfig(); err != nil {
		return fmt.Errorf("failed to back up current config before restore: %w", err)
	}

	if err := os.MkdirAll(GetUserConfigDir(), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(GetUserConfigPath(), data, 0644); err != nil {
		return fmt.Errorf("failed to write restored config: %w", err)
	}
	return nil
}
