package output

import (
	"fmt"
	"strings"

	"github.com/setia/htmldicts/internal/search"
	"github.com/setia/htmldicts/internal/translit"
)

type failedVariantJSON struct {
	Variant string `json:"variant"`
	Error   string `json:"error"`
}

type resultJSON struct {
	Query            string              `json:"query"`
	TotalHits        int                 `json:"total_hits"`
	ProcessingTimeMs int                 `json:"processing_time_ms"`
	ContextSize      search.ContextSize  `json:"context_size"`
	Results          []search.Hit        `json:"results"`
	Variants         []string            `json:"variants,omitempty"`
	Partial          bool                `json:"partial"`
	FailedVariants   []failedVariantJSON `json:"failed_variants,omitempty"`
}

// SearchResult renders r in the given format.
func (w *Writer) SearchResult(r *search.Result, format Format) error {
	if format == FormatJSON {
		view := resultJSON{
			Query:            r.Query,
			TotalHits:        r.EstimatedTotalHits,
			ProcessingTimeMs: r.ProcessingTimeMs,
			ContextSize:      r.ContextSize,
			Results:          r.Hits,
			Variants:         r.Variants,
			Partial:          r.Partial(),
		}
		for _, f := range r.FailedVariants {
			fv := failedVariantJSON{Variant: f.Variant}
			if f.Err != nil {
				fv.Error = f.Err.Error()
			}
			view.FailedVariants = append(view.FailedVariants, fv)
		}
		if view.Results == nil {
			view.Results = []search.Hit{}
		}
		return w.JSON(view)
	}

	w.Line(w.render(w.styles.Header, fmt.Sprintf("%s: %d of ~%d hits across %d variants (%d ms)",
		r.Query, len(r.Hits), r.EstimatedTotalHits, len(r.Variants), r.ProcessingTimeMs)))

	if r.Partial() {
		for _, f := range r.FailedVariants {
			w.Warningf("variant %q skipped: %v", f.Variant, f.Err)
		}
		w.Warningf("results are partial: %d of %d variants failed",
			len(r.FailedVariants), len(r.Variants))
	}

	if len(r.Hits) == 0 {
		w.Line("No entries found.")
		return nil
	}

	for i, h := range r.Hits {
		w.Newline()
		w.Line(fmt.Sprintf("%2d. %s  %s  %s",
			i+1,
			w.render(w.styles.Term, h.Term),
			w.render(w.styles.Source, "["+h.Source+"]"),
			w.render(w.styles.Score, fmt.Sprintf("%.3f", h.Score))))
		if h.Definition != "" {
			w.Line("    " + h.Definition)
		}
		if h.ExpandedContext != nil {
			w.Line(w.renderContext(*h.ExpandedContext))
		}
	}
	return nil
}

func (w *Writer) renderContext(text string) string {
	if w.useColor {
		return w.styles.Context.Render(text)
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = "    " + l
		}
	}
	return strings.Join(lines, "\n")
}

// Variants renders the variant list for word.
func (w *Writer) Variants(word string, variants []string, format Format) error {
	if format == FormatJSON {
		return w.JSON(struct {
			Word     string   `json:"word"`
			Variants []string `json:"variants"`
		}{word, variants})
	}

	w.Line(w.render(w.styles.Header, fmt.Sprintf("%s: %d variants", word, len(variants))))
	for _, v := range variants {
		w.Line("  " + v)
	}
	return nil
}

// Conversion renders a transliteration of text.
func (w *Writer) Conversion(text string, dir translit.Direction, c translit.Conversion, format Format) error {
	if format == FormatJSON {
		return w.JSON(struct {
			Input       string `json:"input"`
			Direction   string `json:"direction"`
			Output      string `json:"output"`
			FullyMapped bool   `json:"fully_mapped"`
			Special     bool   `json:"special"`
		}{text, dir.String(), c.Text, c.FullyMapped, c.Special})
	}

	w.Line(c.Text)
	if !c.FullyMapped {
		w.Warning("some characters have no mapping and were kept as is")
	}
	return nil
}
