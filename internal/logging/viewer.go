package logging

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// LogEntry is one parsed JSON log line.
type LogEntry struct {
	Time    time.Time
	Level   string
	Msg     string
	Attrs   map[string]any
	Raw     string
	IsValid bool
}

// ViewerConfig filters and styles log output.
type ViewerConfig struct {
	// Level drops entries below this level. Empty keeps everything.
	Level   string
	Pattern *regexp.Regexp
	NoColor bool
}

// Viewer reads and formats htmldicts log files.
type Viewer struct {
	config ViewerConfig
	out    io.Writer
}

var levelStyles = map[string]lipgloss.Style{
	"DEBUG": lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	"INFO":  lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	"WARN":  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	"ERROR": lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
}

// NewViewer creates a viewer writing to out.
func NewViewer(cfg ViewerConfig, out io.Writer) *Viewer {
	return &Viewer{config: cfg, out: out}
}

// Tail returns the entries among the last n lines of path that pass the filter.
func (v *Viewer) Tail(path string, n int) ([]LogEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var lines []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
		if len(lines) > n {
			lines = lines[1:]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read log file: %w", err)
	}

	var entries []LogEntry
	for _, line := range lines {
		if entry := ParseLine(line); v.matches(entry) {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// Print writes formatted entries, one per line.
func (v *Viewer) Print(entries []LogEntry) {
	for _, e := range entries {
		_, _ = fmt.Fprintln(v.out, v.FormatEntry(e))
	}
}

// ParseLine parses a slog JSON line. Non-JSON lines are kept raw.
func ParseLine(line string) LogEntry {
	entry := LogEntry{Raw: line}

	var fields map[string]any
	if err := json.Unmarshal([]byte(line), &fields); err != nil {
		return entry
	}

	if s, ok := fields["time"].(string); ok {
		entry.Time, _ = time.Parse(time.RFC3339Nano, s)
	}
	entry.Level, _ = fields["level"].(string)
	entry.Msg, _ = fields["msg"].(string)
	delete(fields, "time")
	delete(fields, "level")
	delete(fields, "msg")
	entry.Attrs = fields
	entry.IsValid = true
	return entry
}

func (v *Viewer) matches(e LogEntry) bool {
	if v.config.Level != "" && e.IsValid {
		if LevelFromString(e.Level) < LevelFromString(v.config.Level) {
			return false
		}
	}
	if v.config.Pattern != nil && !v.config.Pattern.MatchString(e.Raw) {
		return false
	}
	return true
}

// FormatEntry renders "15:04:05.000 LEVEL msg k=v ..." with attributes in key
// order.
func (v *Viewer) FormatEntry(e LogEntry) string {
	if !e.IsValid {
		return e.Raw
	}

	level := fmt.Sprintf("%-5s", strings.ToUpper(e.Level))
	if style, ok := levelStyles[strings.TrimSpace(level)]; ok && !v.config.NoColor {
		level = style.Render(level)
	}

	keys := make([]string, 0, len(e.Attrs))
	for k := range e.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(e.Time.Format("15:04:05.000"))
	b.WriteByte(' ')
	b.WriteString(level)
	b.WriteByte(' ')
	b.WriteString(e.Msg)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, e.Attrs[k])
	}
	return b.String()
}
