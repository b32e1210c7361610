package errors

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FormatForCLI formats an error for terminal display.
func FormatForCLI(err error) string {
	if err == nil {
		return ""
	}

	ae, ok := asError(err)
	if !ok {
		ae = Wrap(ErrCodeInternal, err)
	}

	label := "Error"
	if IsFatal(ae) {
		label = "Fatal"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s: %s\n", label, ae.Message))
	if ae.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("  Hint: %s\n", ae.Suggestion))
	}
	if IsRetryable(ae) {
		sb.WriteString("  Retry: the condition is temporary, run the command again\n")
	}
	sb.WriteString(fmt.Sprintf("  Code: %s (%s)\n", ae.Code, GetCategory(ae)))
	return sb.String()
}

// jsonError is the JSON representation of an error.
type jsonError struct {
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Category   string            `json:"category"`
	Severity   string            `json:"severity"`
	Details    map[string]string `json:"details,omitempty"`
	Suggestion string            `json:"suggestion,omitempty"`
	Cause      string            `json:"cause,omitempty"`
	Retryable  bool              `json:"retryable"`
}

// FormatJSON returns a JSON representation of the error for `--format json`.
func FormatJSON(err error) ([]byte, error) {
	if err == nil {
		return json.Marshal(nil)
	}

	ae, ok := asError(err)
	if !ok {
		ae = Wrap(ErrCodeInternal, err)
	}

	je := jsonError{
		Code:       ae.Code,
		Message:    ae.Message,
		Category:   string(ae.Category),
		Severity:   string(ae.Severity),
		Details:    ae.Details,
		Suggestion: ae.Suggestion,
		Retryable:  ae.Retryable,
	}
	if ae.Cause != nil {
		je.Cause = ae.Cause.Error()
	}
	return json.Marshal(je)
}

// LogAttrs returns key-value pairs for slog.
//
//	slog.Warn("variant_query_failed", errors.LogAttrs(err)...)
func LogAttrs(err error) []any {
	if err == nil {
		return nil
	}

	ae, ok := asError(err)
	if !ok {
		return []any{"error", err.Error()}
	}

	attrs := []any{
		"error_code", ae.Code,
		"message", ae.Message,
		"category", string(ae.Category),
	}
	if ae.Cause != nil {
		attrs = append(attrs, "cause", ae.Cause.Error())
	}
	for k, v := range ae.Details {
		attrs = append(attrs, "detail_"+k, v)
	}
	return attrs
}
