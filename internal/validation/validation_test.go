package validation

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestValidator(t *testing.T) (*Validator, *QueryConfig) {
	t.Helper()

	dir, err := TestdataDir()
	require.NoError(t, err)

	cfg, err := LoadQueries(filepath.Join(dir, "queries.yaml"))
	require.NoError(t, err)

	v, err := NewValidator(context.Background(), filepath.Join(dir, "entries.jsonl"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = v.Close() })

	return v, cfg
}

func TestLoadQueries_AssignsTiers(t *testing.T) {
	dir, err := TestdataDir()
	require.NoError(t, err)

	cfg, err := LoadQueries(filepath.Join(dir, "queries.yaml"))
	require.NoError(t, err)

	require.NotEmpty(t, cfg.Tier1)
	require.NotEmpty(t, cfg.Negative)
	assert.Equal(t, 1, cfg.Tier1[0].Tier)
	assert.Equal(t, 0, cfg.Negative[0].Tier)
	for _, q := range cfg.Tier2 {
		assert.Equal(t, 2, q.Tier)
	}
}

func TestLoadQueries_Errors(t *testing.T) {
	_, err := LoadQueries(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("tier1: [unclosed"), 0o644))
	_, err = LoadQueries(bad)
	assert.Error(t, err)
}

func TestTier1Queries(t *testing.T) {
	v, cfg := newTestValidator(t)

	for _, spec := range cfg.Tier1 {
		t.Run(spec.ID, func(t *testing.T) {
			tr := v.RunQuery(context.Background(), spec)
			assert.True(t, tr.Passed, "%s: %s got %v %s", spec.ID, spec.Name, tr.TopResults, tr.Error)
		})
	}
}

func TestTier2Queries(t *testing.T) {
	v, cfg := newTestValidator(t)

	for _, spec := range cfg.Tier2 {
		t.Run(spec.ID, func(t *testing.T) {
			tr := v.RunQuery(context.Background(), spec)
			if !tr.Passed {
				t.Logf("%s: %s got %v %s", spec.ID, spec.Name, tr.TopResults, tr.Error)
			}
		})
	}
}

func TestNegativeQueries(t *testing.T) {
	v, cfg := newTestValidator(t)

	for _, spec := range cfg.Negative {
		t.Run(spec.ID, func(t *testing.T) {
			assert.NotPanics(t, func() {
				tr := v.RunQuery(context.Background(), spec)
				assert.True(t, tr.Passed)
			})
		})
	}
}

func TestRunAll_Summary(t *testing.T) {
	v, cfg := newTestValidator(t)

	result := v.RunAll(context.Background(), cfg)

	assert.Equal(t, len(cfg.Tier1), result.Tier1Total)
	assert.Equal(t, result.Tier1Total, result.Tier1Pass)
	assert.Equal(t, result.NegTotal, result.NegPass)
	assert.Equal(t, uint64(8), result.Entries)
	assert.Contains(t, result.Summary(), "(8 entries)")
}

func TestRunQuery_FailsOnUnexpectedHit(t *testing.T) {
	v, _ := newTestValidator(t)

	tr := v.RunQuery(context.Background(), QuerySpec{
		Query:    "don",
		Expected: []string{"doc_4"},
		Absent:   []string{"doc_5"},
		Tier:     1,
	})

	assert.False(t, tr.Passed)
	assert.Contains(t, tr.Error, "doc_5")
}

func TestRunQuery_ReportsErrorForRequiredQuery(t *testing.T) {
	v, _ := newTestValidator(t)

	tr := v.RunQuery(context.Background(), QuerySpec{Query: "", Expected: []string{"doc_1"}, Tier: 1})

	assert.False(t, tr.Passed)
	assert.NotEmpty(t, tr.Error)
	assert.Contains(t, tr.Error, "cannot be empty")
}

func TestRunQuery_NegativeQueryRejectedByValidation(t *testing.T) {
	v, _ := newTestValidator(t)

	for _, q := range []string{"", "   "} {
		tr := v.RunQuery(context.Background(), QuerySpec{ID: "N", Query: q, Tier: 0})

		assert.True(t, tr.Passed, "query %q", q)
		assert.Empty(t, tr.Error)
		assert.Empty(t, tr.TopResults, "rejected queries never reach the index")
	}
}

func TestCheckExpected(t *testing.T) {
	results := []string{"doc_3", "doc_1", "doc_2"}

	ok, at := checkExpected(results, []string{"doc_1", "doc_2"})
	assert.True(t, ok)
	assert.Equal(t, 1, at)

	ok, _ = checkExpected(results, []string{"doc_1", "doc_9"})
	assert.False(t, ok)
}
