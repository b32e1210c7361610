package search

import (
	"context"
	"fmt"
	"strings"

	herrors "github.com/setia/htmldicts/internal/errors"
)

// Request limits accepted from callers.
const (
	DefaultLimit          = 50
	DefaultLimitPerSource = 5
	MaxLimit              = 50

	// maxRawLimit caps how many hits one variant sub-query asks the backend for.
	maxRawLimit = 100
)

// Backend field names.
const (
	FieldID              = "id"
	FieldTerm            = "term"
	FieldDefinition      = "definition"
	FieldSource          = "source"
	FieldExpandedContext = "expanded_context"
	FieldFullContext     = "full_context"
)

// ContextSize selects how much surrounding dictionary text a hit carries.
type ContextSize string

const (
	ContextDefault  ContextSize = "default"
	ContextExpanded ContextSize = "expanded"
	ContextFull     ContextSize = "full"
)

// ParseContextSize parses a context size name. Empty means default.
func ParseContextSize(s string) (ContextSize, error) {
	switch ContextSize(strings.ToLower(strings.TrimSpace(s))) {
	case "", ContextDefault:
		return ContextDefault, nil
	case ContextExpanded:
		return ContextExpanded, nil
	case ContextFull:
		return ContextFull, nil
	default:
		return "", herrors.ValidationError(herrors.ErrCodeInvalidContextSize,
			fmt.Sprintf("context size must be one of: default, expanded, full (got %q)", s))
	}
}

// Hit is one matched dictionary entry.
//
// The optional context fields are nil when absent. Hits are values: the merge
// stage reorders and annotates copies and never mutates backend data.
type Hit struct {
	ID              string  `json:"id"`
	Term            string  `json:"term"`
	Definition      string  `json:"definition"`
	Source          string  `json:"source"`
	Score           float64 `json:"score"`
	ExpandedContext *string `json:"expanded_context,omitempty"`
	FullContext     *string `json:"full_context,omitempty"`
}

// BackendRequest is one raw query sent to the search backend.
type BackendRequest struct {
	Query            string
	Attributes       []string
	Limit            int
	ShowRankingScore bool
}

// BackendResponse is the backend's answer to one BackendRequest.
type BackendResponse struct {
	Hits               []Hit
	EstimatedTotalHits int
	ProcessingTimeMs   int
}

// Backend is the full-text search engine queried once per variant.
type Backend interface {
	// Search runs a single ranked query. Scores must be comparable across calls.
	Search(ctx context.Context, req BackendRequest) (*BackendResponse, error)

	// Health returns an error when the backend is unreachable or not operational.
	Health(ctx context.Context) error
}

// Expander produces the query variants searched when transliteration is on.
type Expander interface {
	AllScriptVariants(word string) []string
}

// Request is one dictionary search.
type Request struct {
	Query          string
	Limit          int
	LimitPerSource int
	Transliterate  bool
	ContextSize    ContextSize
	// Source, when set, keeps only hits whose source label contains it.
	Source string
}

// Validate checks the request the way the public surface requires: a
// non-empty query, limits within 1..MaxLimit and a known context size.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Query) == "" {
		return herrors.ValidationError(herrors.ErrCodeQueryEmpty, "search query cannot be empty")
	}
	if r.Limit < 1 || r.Limit > MaxLimit {
		return herrors.ValidationError(herrors.ErrCodeLimitOutOfRange,
			fmt.Sprintf("limit must be between 1 and %d, got %d", MaxLimit, r.Limit))
	}
	if r.LimitPerSource < 1 || r.LimitPerSource > MaxLimit {
		return herrors.ValidationError(herrors.ErrCodeLimitOutOfRange,
			fmt.Sprintf("limit per source must be between 1 and %d, got %d", MaxLimit, r.LimitPerSource))
	}
	if _, err := ParseContextSize(string(r.ContextSize)); err != nil {
		return err
	}
	return nil
}

func (r Request) withDefaults() Request {
	if r.Limit <= 0 {
		r.Limit = DefaultLimit
	}
	if r.LimitPerSource <= 0 {
		r.LimitPerSource = DefaultLimitPerSource
	}
	if size, err := ParseContextSize(string(r.ContextSize)); err == nil {
		r.ContextSize = size
	} else {
		r.ContextSize = ContextDefault
	}
	return r
}

// rawLimit is how many hits each variant sub-query requests. A source filter
// asks for the maximum so enough hits survive filtering.
func (r Request) rawLimit() int {
	if r.Source != "" {
		return maxRawLimit
	}
	return min(maxRawLimit, r.Limit*2)
}

// VariantFailure records a variant whose sub-query failed and was skipped.
type VariantFailure struct {
	Variant string `json:"variant"`
	Err     error  `json:"-"`
}

// Result is the merged, ranked and filtered answer to one Request.
type Result struct {
	Query string `json:"query"`
	// EstimatedTotalHits is the maximum estimate over all variant sub-queries.
	EstimatedTotalHits int `json:"total_hits"`
	// ProcessingTimeMs is the summed backend time of all sub-queries.
	ProcessingTimeMs int         `json:"processing_time_ms"`
	ContextSize      ContextSize `json:"context_size"`
	Hits             []Hit       `json:"results"`

	// Variants lists the queried strings in generation order.
	Variants       []string         `json:"variants,omitempty"`
	FailedVariants []VariantFailure `json:"failed_variants,omitempty"`
}

// Partial reports whether some variant sub-queries were skipped.
func (r *Result) Partial() bool {
	return len(r.FailedVariants) > 0
}

func attributesFor(size ContextSize) []string {
	attrs := []string{FieldTerm, FieldDefinition, FieldSource, FieldID}
	switch size {
	case ContextExpanded:
		attrs = append(attrs, FieldExpandedContext)
	case ContextFull:
		attrs = append(attrs, FieldFullContext)
	}
	return attrs
}
