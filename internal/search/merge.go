package search

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// mergeResponses concatenates hits in response order keeping the first hit
// seen for each ID. The total is the maximum estimate because every variant
// searches the same index; processing time is summed.
func mergeResponses(responses []*BackendResponse) (hits []Hit, total, took int) {
	seen := make(map[string]struct{})
	for _, resp := range responses {
		if resp == nil {
			continue
		}
		took += resp.ProcessingTimeMs
		total = max(total, resp.EstimatedTotalHits)

		for _, h := range resp.Hits {
			if _, dup := seen[h.ID]; dup {
				continue
			}
			seen[h.ID] = struct{}{}
			hits = append(hits, h)
		}
	}
	if hits == nil {
		hits = []Hit{}
	}
	return hits, total, took
}

// sortByScore orders hits by descending score; equal scores keep merge order.
func sortByScore(hits []Hit) {
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})
}

// filterBySource keeps hits whose normalised source contains the normalised
// filter, then truncates to limit.
func filterBySource(hits []Hit, source string, limit int) []Hit {
	needle := normalizeSource(source)

	out := make([]Hit, 0, min(len(hits), limit))
	for _, h := range hits {
		if strings.Contains(normalizeSource(h.Source), needle) {
			out = append(out, h)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

// capPerSource walks hits in order, taking at most perSource from each source
// and stopping once limit hits are taken. A capped source does not stop the
// walk.
func capPerSource(hits []Hit, perSource, limit int) []Hit {
	counts := make(map[string]int)
	out := make([]Hit, 0, min(len(hits), limit))

	for _, h := range hits {
		if counts[h.Source] >= perSource {
			continue
		}
		counts[h.Source]++
		out = append(out, h)
		if len(out) >= limit {
			break
		}
	}
	return out
}

// normalizeSource applies Unicode case folding and NFKC normalisation.
func normalizeSource(s string) string {
	return norm.NFKC.String(cases.Fold().String(s))
}
