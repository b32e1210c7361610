// Package search runs a dictionary query once per script/spelling variant and
// merges the per-variant hits into one ranked, deduplicated, per-source capped
// result.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	herrors "github.com/setia/htmldicts/internal/errors"
	"github.com/setia/htmldicts/internal/variants"
)

// FailurePolicy decides what a failed variant sub-query does to the search.
type FailurePolicy string

const (
	// FailAbort fails the whole search with BackendQueryFailed.
	FailAbort FailurePolicy = "abort"
	// FailSkip drops the variant, records it in Result.FailedVariants and
	// merges the rest.
	FailSkip FailurePolicy = "skip"
)

// ParseFailurePolicy parses "abort" or "skip".
func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch FailurePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", FailAbort:
		return FailAbort, nil
	case FailSkip:
		return FailSkip, nil
	default:
		return "", fmt.Errorf("unknown variant failure policy %q (use abort or skip)", s)
	}
}

// Searcher merges variant sub-queries against a Backend. It holds no
// per-request state and is safe for concurrent use.
type Searcher struct {
	backend  Backend
	expander Expander

	policy      FailurePolicy
	parallelism int
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithParallelism sets the maximum number of concurrent sub-queries.
func WithParallelism(n int) Option {
	return func(s *Searcher) {
		if n > 0 {
			s.parallelism = n
		}
	}
}

// WithFailurePolicy sets how a failed variant sub-query is handled.
func WithFailurePolicy(p FailurePolicy) Option {
	return func(s *Searcher) {
		if p == FailAbort || p == FailSkip {
			s.policy = p
		}
	}
}

// WithExpander replaces the variant expander.
func WithExpander(e Expander) Option {
	return func(s *Searcher) {
		if e != nil {
			s.expander = e
		}
	}
}

// NewSearcher creates a Searcher over backend with the default Ossetian
// variant expander.
func NewSearcher(backend Backend, opts ...Option) *Searcher {
	s := &Searcher{
		backend:     backend,
		policy:      FailAbort,
		parallelism: 4,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.expander == nil {
		s.expander = variants.New()
	}
	return s
}

// variantResponse holds the outcome of one variant sub-query.
type variantResponse struct {
	resp *BackendResponse
	err  error
}

// Search runs req and returns the merged result.
//
// The algorithm:
//  1. Check backend health (BackendUnavailable on failure)
//  2. Expand the query into variants (or just the query without transliteration)
//  3. Run one sub-query per variant concurrently
//  4. Merge in variant order, first-seen identity wins
//  5. Stable sort by score, then source filter or per-source cap
//  6. Shape the context field
func (s *Searcher) Search(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	req = req.withDefaults()

	if err := s.backend.Health(ctx); err != nil {
		if herrors.HasCode(err, herrors.ErrCodeBackendUnavailable) {
			return nil, err
		}
		return nil, herrors.BackendUnavailable("search backend is not operational", err)
	}

	queries := []string{req.Query}
	if req.Transliterate {
		queries = s.expander.AllScriptVariants(req.Query)
	}

	slog.Debug("variant_expansion",
		slog.String("query", req.Query),
		slog.Int("variants", len(queries)),
		slog.Bool("transliterate", req.Transliterate))

	breq := BackendRequest{
		Attributes:       attributesFor(req.ContextSize),
		Limit:            req.rawLimit(),
		ShowRankingScore: true,
	}

	responses, err := s.fanOut(ctx, queries, breq)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Query:       req.Query,
		ContextSize: req.ContextSize,
		Variants:    queries,
	}

	succeeded := make([]*BackendResponse, 0, len(responses))
	for i, r := range responses {
		if r.err == nil {
			succeeded = append(succeeded, r.resp)
			continue
		}
		if herrors.HasCode(r.err, herrors.ErrCodeBackendUnavailable) {
			return nil, r.err
		}
		qerr := herrors.BackendQueryFailed(queries[i], r.err)
		if s.policy == FailAbort {
			return nil, qerr
		}
		slog.Warn("variant_query_failed", herrors.LogAttrs(qerr)...)
		result.FailedVariants = append(result.FailedVariants, VariantFailure{Variant: queries[i], Err: qerr})
	}
	if len(succeeded) == 0 && len(result.FailedVariants) > 0 {
		return nil, herrors.New(herrors.ErrCodeSearchFailed,
			fmt.Sprintf("all %d variant sub-queries failed", len(result.FailedVariants)),
			result.FailedVariants[0].Err)
	}

	hits, total, took := mergeResponses(succeeded)
	sortByScore(hits)

	if req.Source != "" {
		hits = filterBySource(hits, req.Source, req.Limit)
	} else {
		hits = capPerSource(hits, req.LimitPerSource, req.Limit)
	}

	result.Hits = ShapeContext(hits, req.ContextSize)
	result.EstimatedTotalHits = total
	result.ProcessingTimeMs = took

	slog.Debug("search_complete",
		slog.String("query", req.Query),
		slog.Int("variants", len(queries)),
		slog.Int("failed_variants", len(result.FailedVariants)),
		slog.Int("results", len(result.Hits)),
		slog.Duration("duration", time.Since(start)))

	return result, nil
}

// fanOut runs one backend query per variant. Results are stored by variant
// index so merging follows generation order, not completion order.
func (s *Searcher) fanOut(ctx context.Context, queries []string, base BackendRequest) ([]variantResponse, error) {
	results := make([]variantResponse, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, s.parallelism)

	for i, q := range queries {
		i, q := i, q
		g.Go(func() error {
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-gctx.Done():
				return gctx.Err()
			}

			req := base
			req.Query = q
			resp, err := s.backend.Search(gctx, req)
			if err == nil && resp == nil {
				resp = &BackendResponse{}
			}
			// Each goroutine owns its slot.
			results[i] = variantResponse{resp: resp, err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
