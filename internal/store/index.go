// Package store keeps dictionary entries in a bleve full-text index and
// answers the per-variant queries issued by the search merger.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/char/asciifolding"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"
	"github.com/blevesearch/bleve/v2/mapping"

	herrors "github.com/setia/htmldicts/internal/errors"
	"github.com/setia/htmldicts/internal/search"
)

const (
	// DictAnalyzerName folds Latin diacritics (ū to u, æ to ae), splits on
	// Unicode word boundaries and lower-cases. Cyrillic letters are kept, so
	// both scripts are handled alike and fuzzy edits count on folded text.
	DictAnalyzerName = "dict_analyzer"

	// DefaultBatchSize is the number of entries per bleve batch.
	DefaultBatchSize = 500

	termBoost = 2.0
)

const (
	fieldTerm            = search.FieldTerm
	fieldDefinition      = search.FieldDefinition
	fieldSource          = search.FieldSource
	fieldExpandedContext = search.FieldExpandedContext
	fieldFullContext     = search.FieldFullContext
)

// DictionaryIndex is a bleve index of dictionary entries. It implements
// search.Backend and is safe for concurrent use.
type DictionaryIndex struct {
	mu        sync.RWMutex
	index     bleve.Index
	path      string
	batchSize int
	closed    bool
}

// Create builds an empty index at path, replacing anything already there.
// An empty path creates an in-memory index.
func Create(path string) (*DictionaryIndex, error) {
	indexMapping, err := createIndexMapping()
	if err != nil {
		return nil, fmt.Errorf("failed to create index mapping: %w", err)
	}

	var idx bleve.Index
	if path == "" {
		idx, err = bleve.NewMemOnly(indexMapping)
	} else {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", filepath.Dir(path), err)
		}
		if err := os.RemoveAll(path); err != nil {
			return nil, fmt.Errorf("failed to clear previous index at %s: %w", path, err)
		}
		idx, err = bleve.New(path, indexMapping)
	}
	if err != nil {
		return nil, herrors.New(herrors.ErrCodeIndexFailed, "failed to create index", err)
	}

	return &DictionaryIndex{index: idx, path: path, batchSize: DefaultBatchSize}, nil
}

// Open opens an existing index. A missing index is ErrCodeFileNotFound and a
// damaged one is ErrCodeCorruptIndex; both suggest rebuilding.
func Open(path string) (*DictionaryIndex, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, herrors.New(herrors.ErrCodeFileNotFound,
			fmt.Sprintf("no dictionary index at %s", path), err).
			WithSuggestion("Build one with: htmldicts index <entries.jsonl>")
	}

	if err := validateIndexIntegrity(path); err != nil {
		slog.Warn("dictionary_index_corrupted",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return nil, herrors.New(herrors.ErrCodeCorruptIndex, "dictionary index is damaged", err).
			WithDetail("path", path).
			WithSuggestion("Rebuild it with: htmldicts index <entries.jsonl>")
	}

	idx, err := bleve.Open(path)
	if err != nil {
		if isCorruptionError(err) {
			return nil, herrors.New(herrors.ErrCodeCorruptIndex, "dictionary index is damaged", err).
				WithDetail("path", path).
				WithSuggestion("Rebuild it with: htmldicts index <entries.jsonl>")
		}
		return nil, herrors.New(herrors.ErrCodeBackendUnavailable, "failed to open dictionary index", err)
	}

	return &DictionaryIndex{index: idx, path: path, batchSize: DefaultBatchSize}, nil
}

// validateIndexIntegrity checks that index_meta.json exists and parses.
func validateIndexIntegrity(path string) error {
	metaPath := filepath.Join(path, "index_meta.json")
	info, err := os.Stat(metaPath)
	if os.IsNotExist(err) {
		return fmt.Errorf("index_meta.json missing")
	}
	if err != nil {
		return fmt.Errorf("cannot stat index_meta.json: %w", err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("index_meta.json is empty")
	}

	data, err := os.ReadFile(metaPath)
	if err != nil {
		return fmt.Errorf("cannot read index_meta.json: %w", err)
	}
	var meta map[string]any
	if err := json.Unmarshal(data, &meta); err != nil {
		return fmt.Errorf("index_meta.json is corrupt: %w", err)
	}
	return nil
}

func isCorruptionError(err error) bool {
	if err == nil {
		return false
	}
	if err == bleve.ErrorIndexMetaCorrupt {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "unexpected end of JSON") ||
		strings.Contains(msg, "error parsing mapping JSON") ||
		strings.Contains(msg, "failed to load segment")
}

// createIndexMapping maps entries: term and definition are analysed text,
// source is a single keyword, and the context fields are stored only.
func createIndexMapping() (*mapping.IndexMappingImpl, error) {
	indexMapping := bleve.NewIndexMapping()

	err := indexMapping.AddCustomAnalyzer(DictAnalyzerName, map[string]any{
		"type":          custom.Name,
		"char_filters":  []string{asciifolding.Name},
		"tokenizer":     unicode.Name,
		"token_filters": []string{lowercase.Name},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add custom analyzer: %w", err)
	}
	indexMapping.DefaultAnalyzer = DictAnalyzerName

	text := func() *mapping.FieldMapping {
		fm := bleve.NewTextFieldMapping()
		fm.Analyzer = DictAnalyzerName
		fm.Store = true
		fm.IncludeInAll = false
		return fm
	}

	sourceField := bleve.NewTextFieldMapping()
	sourceField.Analyzer = keyword.Name
	sourceField.Store = true
	sourceField.IncludeInAll = false

	storedOnly := func() *mapping.FieldMapping {
		fm := bleve.NewTextFieldMapping()
		fm.Index = false
		fm.Store = true
		fm.IncludeInAll = false
		fm.IncludeTermVectors = false
		return fm
	}

	entryMapping := bleve.NewDocumentMapping()
	entryMapping.AddFieldMappingsAt(fieldTerm, text())
	entryMapping.AddFieldMappingsAt(fieldDefinition, text())
	entryMapping.AddFieldMappingsAt(fieldSource, sourceField)
	entryMapping.AddFieldMappingsAt(fieldExpandedContext, storedOnly())
	entryMapping.AddFieldMappingsAt(fieldFullContext, storedOnly())
	indexMapping.DefaultMapping = entryMapping

	return indexMapping, nil
}

// Index adds entries in batches, checking ctx between batches.
func (d *DictionaryIndex) Index(ctx context.Context, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return herrors.New(herrors.ErrCodeIndexFailed, "index is closed", nil)
	}

	for start := 0; start < len(entries); start += d.batchSize {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := min(start+d.batchSize, len(entries))

		batch := d.index.NewBatch()
		for _, e := range entries[start:end] {
			if err := batch.Index(e.ID, e.document()); err != nil {
				return herrors.New(herrors.ErrCodeIndexFailed,
					fmt.Sprintf("failed to index entry %s", e.ID), err)
			}
		}
		if err := d.index.Batch(batch); err != nil {
			return herrors.New(herrors.ErrCodeIndexFailed, "failed to execute batch", err)
		}

		slog.Debug("index_batch_written",
			slog.Int("from", start),
			slog.Int("to", end),
			slog.Int("total", len(entries)))
	}
	return nil
}

// Search runs one ranked query: the term field is matched fuzzily with a
// boost, the definition exactly. Scores are mapped into [0, 1).
func (d *DictionaryIndex) Search(ctx context.Context, req search.BackendRequest) (*search.BackendResponse, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return nil, herrors.BackendUnavailable("dictionary index is closed", nil)
	}

	if strings.TrimSpace(req.Query) == "" {
		return &search.BackendResponse{Hits: []search.Hit{}}, nil
	}

	termQuery := bleve.NewMatchQuery(req.Query)
	termQuery.SetField(fieldTerm)
	termQuery.SetFuzziness(fuzzinessFor(req.Query))
	termQuery.SetBoost(termBoost)

	defQuery := bleve.NewMatchQuery(req.Query)
	defQuery.SetField(fieldDefinition)

	sreq := bleve.NewSearchRequest(bleve.NewDisjunctionQuery(termQuery, defQuery))
	sreq.Size = max(req.Limit, 0)
	sreq.Fields = storedFields(req.Attributes)

	result, err := d.index.SearchInContext(ctx, sreq)
	if err != nil {
		return nil, fmt.Errorf("bleve search failed: %w", err)
	}

	hits := make([]search.Hit, 0, len(result.Hits))
	for _, dm := range result.Hits {
		hit := search.Hit{
			ID:         dm.ID,
			Term:       stringField(dm.Fields, fieldTerm),
			Definition: stringField(dm.Fields, fieldDefinition),
			Source:     stringField(dm.Fields, fieldSource),
		}
		if s, ok := dm.Fields[fieldExpandedContext].(string); ok {
			hit.ExpandedContext = &s
		}
		if s, ok := dm.Fields[fieldFullContext].(string); ok {
			hit.FullContext = &s
		}
		if req.ShowRankingScore {
			hit.Score = normalizeScore(dm.Score)
		}
		hits = append(hits, hit)
	}

	return &search.BackendResponse{
		Hits:               hits,
		EstimatedTotalHits: int(result.Total),
		ProcessingTimeMs:   int(result.Took.Milliseconds()),
	}, nil
}

// Health reports whether the index is open and readable.
func (d *DictionaryIndex) Health(ctx context.Context) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return herrors.BackendUnavailable("dictionary index is closed", nil)
	}
	if _, err := d.index.DocCount(); err != nil {
		return herrors.BackendUnavailable("dictionary index is not readable", err)
	}
	return ctx.Err()
}

// Count returns the number of indexed entries.
func (d *DictionaryIndex) Count() (uint64, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return 0, herrors.BackendUnavailable("dictionary index is closed", nil)
	}
	return d.index.DocCount()
}

// Path returns the on-disk location, or "" for an in-memory index.
func (d *DictionaryIndex) Path() string {
	return d.path
}

// Close closes the index. Closing twice is a no-op.
func (d *DictionaryIndex) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}
	d.closed = true
	return d.index.Close()
}

// fuzzinessFor allows no edits for short words, one from four runes and two
// from eight. Multi-word queries use their shortest word.
func fuzzinessFor(query string) int {
	shortest := 0
	for i, w := range strings.Fields(query) {
		n := utf8.RuneCountInString(w)
		if i == 0 || n < shortest {
			shortest = n
		}
	}
	switch {
	case shortest >= 8:
		return 2
	case shortest >= 4:
		return 1
	default:
		return 0
	}
}

// normalizeScore maps an unbounded relevance score into [0, 1) keeping order.
func normalizeScore(s float64) float64 {
	if s <= 0 {
		return 0
	}
	return s / (1 + s)
}

// storedFields returns the stored fields for the requested attributes. The
// ID is the document key and never a stored field.
func storedFields(attrs []string) []string {
	fields := make([]string, 0, len(attrs))
	for _, a := range attrs {
		switch a {
		case fieldTerm, fieldDefinition, fieldSource, fieldExpandedContext, fieldFullContext:
			fields = append(fields, a)
		}
	}
	return fields
}

func stringField(fields map[string]any, name string) string {
	s, _ := fields[name].(string)
	return s
}

var _ search.Backend = (*DictionaryIndex)(nil)
