// Package output formats CLI output: status lines, search results and
// variant listings, as styled text on a terminal or as JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Format selects text or JSON rendering.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat parses "text" or "json". Empty means text.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q (use text or json)", s)
	}
}

// Writer provides formatted output for the CLI.
type Writer struct {
	out      io.Writer
	useColor bool
	styles   Styles
}

// New creates a Writer that colours output only on a terminal without
// NO_COLOR set.
func New(out io.Writer) *Writer {
	return NewWithColor(out, IsTTY(out) && !DetectNoColor())
}

// NewWithColor creates a Writer with colour forced on or off.
func NewWithColor(out io.Writer, useColor bool) *Writer {
	return &Writer{out: out, useColor: useColor, styles: DefaultStyles()}
}

// UseColor reports whether styles are applied.
func (w *Writer) UseColor() bool {
	return w.useColor
}

func (w *Writer) render(style lipgloss.Style, s string) string {
	if !w.useColor {
		return s
	}
	return style.Render(s)
}

// Status prints a message behind an icon. Write errors are ignored for
// console output.
func (w *Writer) Status(icon, msg string) {
	if icon != "" {
		_, _ = fmt.Fprintf(w.out, "%s %s\n", icon, msg)
	} else {
		_, _ = fmt.Fprintf(w.out, "   %s\n", msg)
	}
}

// Success prints a success line.
func (w *Writer) Success(msg string) {
	w.Status(w.render(w.styles.Success, "✓"), msg)
}

// Successf prints a formatted success line.
func (w *Writer) Successf(format string, args ...any) {
	w.Success(fmt.Sprintf(format, args...))
}

// Warning prints a warning line.
func (w *Writer) Warning(msg string) {
	w.Status(w.render(w.styles.Warning, "!"), msg)
}

// Warningf prints a formatted warning line.
func (w *Writer) Warningf(format string, args ...any) {
	w.Warning(fmt.Sprintf(format, args...))
}

// Error prints an error line.
func (w *Writer) Error(msg string) {
	w.Status(w.render(w.styles.Error, "✗"), msg)
}

// Line prints msg as is.
func (w *Writer) Line(msg string) {
	_, _ = fmt.Fprintln(w.out, msg)
}

// Newline prints an empty line.
func (w *Writer) Newline() {
	_, _ = fmt.Fprintln(w.out)
}

// Progress redraws an in-place progress bar, ending the line when done.
func (w *Writer) Progress(current, total int, msg string) {
	if total <= 0 {
		return
	}

	pct := float64(current) / float64(total) * 100
	bar := renderProgressBar(current, total, 30)
	_, _ = fmt.Fprintf(w.out, "\r[%s] %.0f%% %s", w.render(w.styles.Accent, bar), pct, msg)

	if current >= total {
		_, _ = fmt.Fprintln(w.out)
	}
}

// JSON writes v as indented JSON.
func (w *Writer) JSON(v any) error {
	enc := json.NewEncoder(w.out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func renderProgressBar(current, total, width int) string {
	if total <= 0 {
		return strings.Repeat("░", width)
	}
	filled := min(max(current*width/total, 0), width)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// DetectNoColor reports whether NO_COLOR is set.
func DetectNoColor() bool {
	_, exists := os.LookupEnv("NO_COLOR")
	return exists
}
