package preflight

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// CheckStatus represents the result of a preflight check.
type CheckStatus int

const (
	// StatusPass indicates the check passed successfully.
	StatusPass CheckStatus = iota
	// StatusWarn indicates a non-critical warning.
	StatusWarn
	// StatusFail indicates the check failed.
	StatusFail
)

// String returns the string representation of a CheckStatus.
func (s CheckStatus) String() string {
	switch s {
	case StatusPass:
		return "PASS"
	case StatusWarn:
		return "WARN"
	case StatusFail:
		return "FAIL"
	default:
		return "UNKNOWN"
	}
}

// CheckResult holds the result of a single preflight check.
type CheckResult struct {
	Name     string      `json:"name"`
	Status   CheckStatus `json:"status"`
	Message  string      `json:"message"`
	Required bool        `json:"required"`
}

// IsCritical returns true if this is a required check that failed.
func (r CheckResult) IsCritical() bool {
	return r.Required && r.Status == StatusFail
}

// Checker performs preflight validation checks.
type Checker struct {
	output io.Writer
	// minFree is the floor for the disk space estimate.
	minFree uint64
}

// Option configures a Checker.
type Option func(*Checker)

// WithOutput sets where PrintResults writes.
func WithOutput(w io.Writer) Option {
	return func(c *Checker) {
		c.output = w
	}
}

// WithMinFreeSpace overrides the minimum free space required.
func WithMinFreeSpace(bytes uint64) Option {
	return func(c *Checker) {
		c.minFree = bytes
	}
}

// New creates a new Checker.
func New(opts ...Option) *Checker {
	c := &Checker{
		output:  os.Stdout,
		minFree: MinDiskSpaceBytes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RunIndexChecks validates that entriesPath can be indexed into indexPath.
func (c *Checker) RunIndexChecks(ctx context.Context, entriesPath, indexPath string) []CheckResult {
	dir := filepath.Dir(indexPath)

	results := []CheckResult{c.CheckEntriesFile(entriesPath)}
	if ctx.Err() != nil {
		return results
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return append(results, CheckResult{
			Name:     "write_permissions",
			Status:   StatusFail,
			Message:  fmt.Sprintf("cannot create %s: %v", dir, err),
			Required: true,
		})
	}
	results = append(results, c.CheckWritePermissions(dir))

	var need uint64
	if info, err := os.Stat(entriesPath); err == nil {
		need = EstimateIndexSize(info.Size())
	}
	results = append(results, c.CheckDiskSpace(dir, need))
	return results
}

// HasCriticalFailures returns true if any required check failed.
func (c *Checker) HasCriticalFailures(results []CheckResult) bool {
	for _, r := range results {
		if r.IsCritical() {
			return true
		}
	}
	return false
}

// FirstFailure returns the first critical failure, if any.
func (c *Checker) FirstFailure(results []CheckResult) (CheckResult, bool) {
	for _, r := range results {
		if r.IsCritical() {
			return r, true
		}
	}
	return CheckResult{}, false
}

// SummaryStatus returns a summary status string for the results.
func (c *Checker) SummaryStatus(results []CheckResult) string {
	hasWarnings := false
	for _, r := range results {
		if r.IsCritical() {
			return "failed"
		}
		if r.Status == StatusWarn || r.Status == StatusFail {
			hasWarnings = true
		}
	}
	if hasWarnings {
		return "ready_with_warnings"
	}
	return "ready"
}

// PrintResults prints check results to the configured output.
func (c *Checker) PrintResults(results []CheckResult) {
	for _, r := range results {
		_, _ = fmt.Fprintf(c.output, "[%s] %s: %s\n", r.Status, r.Name, r.Message)
	}
	_, _ = fmt.Fprintf(c.output, "Status: %s\n", strings.ToUpper(c.SummaryStatus(results)))
}

// CheckEntriesFile checks that the entries file exists, is a regular file and
// can be opened.
func (c *Checker) CheckEntriesFile(path string) CheckResult {
	result := CheckResult{
		Name:     "entries_file",
		Required: true,
	}

	info, err := os.Stat(path)
	if err != nil {
		result.Status = StatusFail
		result.Message = fmt.Sprintf("not found: %s", path)
		return result
	}
	if info.IsDir() {
		result.Status = StatusFail
		result.Message = fmt.Sprintf("%s is a directory", path)
		return result
	}

	f, err := os.Open(path)
	if err != nil {
		result.Status = StatusFail
		result.Message = fmt.Sprintf("cannot read: %v", err)
		return result
	}
	_ = f.Close()

	if info.Size() == 0 {
		result.Status = StatusWarn
		result.Message = "file is empty"
		return result
	}

	result.Status = StatusPass
	result.Message = formatBytes(uint64(info.Size()))
	return result
}

// CheckWritePermissions checks that files can be created in dir.
func (c *Checker) CheckWritePermissions(dir string) CheckResult {
	result := CheckResult{
		Name:     "write_permissions",
		Required: true,
	}

	f, err := os.CreateTemp(dir, ".htmldicts-preflight-*")
	if err != nil {
		result.Status = StatusFail
		result.Message = fmt.Sprintf("permission denied: %v", err)
		return result
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)

	result.Status = StatusPass
	result.Message = "OK"
	return result
}
