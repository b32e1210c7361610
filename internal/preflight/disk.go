package preflight

import (
	"fmt"
	"syscall"
)

// MinDiskSpaceBytes is the minimum free space required for any build (10MB).
const MinDiskSpaceBytes = 10 * 1024 * 1024

// indexSizeFactor approximates index size relative to the JSONL input.
const indexSizeFactor = 3

// EstimateIndexSize returns the expected on-disk size of an index built from
// an entries file of entriesSize bytes.
func EstimateIndexSize(entriesSize int64) uint64 {
	if entriesSize <= 0 {
		return 0
	}
	return uint64(entriesSize) * indexSizeFactor
}

// CheckDiskSpace checks that path has room for need bytes, and never less
// than the configured minimum.
func (c *Checker) CheckDiskSpace(path string, need uint64) CheckResult {
	result := CheckResult{
		Name:     "disk_space",
		Required: true,
	}

	need = max(need, c.minFree)

	var stat syscall.Statfs_t
	if err := syscall.Statfs(path, &stat); err != nil {
		result.Status = StatusFail
		result.Message = fmt.Sprintf("failed to check disk space: %v", err)
		return result
	}

	availableBytes := stat.Bavail * uint64(stat.Bsize)
	result.Message = fmt.Sprintf("%s free (need %s)", formatBytes(availableBytes), formatBytes(need))

	if availableBytes < need {
		result.Status = StatusFail
		return result
	}
	result.Status = StatusPass
	return result
}

// formatBytes formats bytes as a human-readable string.
func formatBytes(bytes uint64) string {
	const (
		KB = 1024
		MB = 1024 * KB
		GB = 1024 * MB
		TB = 1024 * GB
	)

	switch {
	case bytes >= TB:
		return fmt.Sprintf("%.1f TB", float64(bytes)/TB)
	case bytes >= GB:
		return fmt.Sprintf("%.1f GB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%d bytes", bytes)
	}
}
