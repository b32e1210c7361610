// Package validation runs data-driven search quality checks against a small
// dictionary corpus.
//
// Queries live in testdata/queries.yaml and entries in testdata/entries.jsonl,
// so expectations can change without touching Go code. Tier 1 queries must
// pass on every change; Tier 2 covers fuzzier behaviour; Negative queries
// only need to come back without a panic or unexpected error.
package validation

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/setia/htmldicts/internal/search"
	"github.com/setia/htmldicts/internal/store"
)

// QuerySpec defines a query with the entry IDs expected among its hits.
type QuerySpec struct {
	ID         string   `yaml:"id"`
	Name       string   `yaml:"name"`
	Query      string   `yaml:"query"`
	Source     string   `yaml:"source"`
	NoTranslit bool     `yaml:"no_translit"`
	Expected   []string `yaml:"expected"`
	// Absent lists IDs that must not appear.
	Absent []string `yaml:"absent"`
	Notes  string   `yaml:"notes"`
	Tier   int      `yaml:"-"`
}

// QueryConfig holds all validation queries.
type QueryConfig struct {
	Tier1    []QuerySpec `yaml:"tier1"`
	Tier2    []QuerySpec `yaml:"tier2"`
	Negative []QuerySpec `yaml:"negative"`
}

// TestdataDir returns the directory holding the bundled corpus and queries.
func TestdataDir() (string, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("failed to get current file path")
	}
	return filepath.Join(filepath.Dir(filename), "testdata"), nil
}

// LoadQueries reads a query file and assigns tiers by section.
func LoadQueries(path string) (*QueryConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read queries file %s: %w", path, err)
	}

	var cfg QueryConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse queries YAML: %w", err)
	}

	for i := range cfg.Tier1 {
		cfg.Tier1[i].Tier = 1
	}
	for i := range cfg.Tier2 {
		cfg.Tier2[i].Tier = 2
	}
	for i := range cfg.Negative {
		cfg.Negative[i].Tier = 0
	}
	return &cfg, nil
}

// TestResult captures the outcome of a single query.
type TestResult struct {
	Spec       QuerySpec     `json:"spec"`
	Passed     bool          `json:"passed"`
	Duration   time.Duration `json:"duration_ms"`
	TopResults []string      `json:"top_results"`
	// MatchedAt is the rank of the first expected ID, or -1.
	MatchedAt int    `json:"matched_at"`
	Error     string `json:"error,omitempty"`
}

// ValidationResult captures a full run.
type ValidationResult struct {
	Timestamp  time.Time    `json:"timestamp"`
	Tier1      []TestResult `json:"tier1"`
	Tier2      []TestResult `json:"tier2"`
	Negative   []TestResult `json:"negative"`
	Tier1Pass  int          `json:"tier1_pass"`
	Tier1Total int          `json:"tier1_total"`
	Tier2Pass  int          `json:"tier2_pass"`
	Tier2Total int          `json:"tier2_total"`
	NegPass    int          `json:"negative_pass"`
	NegTotal   int          `json:"negative_total"`
	Entries    uint64       `json:"entries"`
}

// Summary renders pass counts per tier.
func (r *ValidationResult) Summary() string {
	return fmt.Sprintf("tier1 %d/%d, tier2 %d/%d, negative %d/%d (%d entries)",
		r.Tier1Pass, r.Tier1Total, r.Tier2Pass, r.Tier2Total, r.NegPass, r.NegTotal, r.Entries)
}

// Validator runs queries against an in-memory dictionary index.
type Validator struct {
	index    *store.DictionaryIndex
	searcher *search.Searcher
	limit    int
}

// NewValidator indexes the JSONL corpus at entriesPath in memory.
func NewValidator(ctx context.Context, entriesPath string, opts ...search.Option) (*Validator, error) {
	entries, err := store.LoadEntriesFile(entriesPath)
	if err != nil {
		return nil, err
	}

	idx, err := store.Create("")
	if err != nil {
		return nil, err
	}
	if err := idx.Index(ctx, entries); err != nil {
		_ = idx.Close()
		return nil, fmt.Errorf("failed to index corpus: %w", err)
	}

	return &Validator{
		index:    idx,
		searcher: search.NewSearcher(idx, opts...),
		limit:    10,
	}, nil
}

// Close releases the index.
func (v *Validator) Close() error {
	return v.index.Close()
}

// RunQuery executes a single query and checks its expectations.
func (v *Validator) RunQuery(ctx context.Context, spec QuerySpec) TestResult {
	start := time.Now()
	result := TestResult{Spec: spec, MatchedAt: -1}

	req := search.Request{
		Query:          spec.Query,
		Limit:          v.limit,
		LimitPerSource: v.limit,
		Transliterate:  !spec.NoTranslit,
		Source:         spec.Source,
	}
	var res *search.Result
	err := req.Validate()
	if err == nil {
		res, err = v.searcher.Search(ctx, req)
	}
	result.Duration = time.Since(start)

	if err != nil {
		// Negative queries may be rejected
		if spec.Tier == 0 {
			result.Passed = true
		} else {
			result.Error = err.Error()
		}
		return result
	}

	for _, h := range res.Hits {
		result.TopResults = append(result.TopResults, h.ID)
	}

	if len(spec.Expected) == 0 {
		result.Passed = true
	} else {
		result.Passed, result.MatchedAt = checkExpected(result.TopResults, spec.Expected)
	}
	if result.Passed {
		if id, found := findAbsent(result.TopResults, spec.Absent); found {
			result.Passed = false
			result.Error = fmt.Sprintf("unexpected hit %s", id)
		}
	}
	return result
}

// RunAll executes every query in cfg.
func (v *Validator) RunAll(ctx context.Context, cfg *QueryConfig) *ValidationResult {
	result := &ValidationResult{Timestamp: time.Now()}
	result.Entries, _ = v.index.Count()

	run := func(specs []QuerySpec, out *[]TestResult, pass, total *int) {
		for _, spec := range specs {
			tr := v.RunQuery(ctx, spec)
			*out = append(*out, tr)
			*total++
			if tr.Passed {
				*pass++
			}
		}
	}

	run(cfg.Tier1, &result.Tier1, &result.Tier1Pass, &result.Tier1Total)
	run(cfg.Tier2, &result.Tier2, &result.Tier2Pass, &result.Tier2Total)
	run(cfg.Negative, &result.Negative, &result.NegPass, &result.NegTotal)

	return result
}

// checkExpected reports whether every expected ID appears in results, and the
// rank of the first one found.
func checkExpected(results, expected []string) (bool, int) {
	first := -1
	for _, want := range expected {
		pos := indexOf(results, want)
		if pos < 0 {
			return false, first
		}
		if first < 0 || pos < first {
			first = pos
		}
	}
	return true, first
}

func findAbsent(results, absent []string) (string, bool) {
	for _, id := range absent {
		if indexOf(results, id) >= 0 {
			return id, true
		}
	}
	return "", false
}

func indexOf(results []string, id string) int {
	for i, r := range results {
		if strings.EqualFold(r, id) {
			return i
		}
	}
	return -1
}
