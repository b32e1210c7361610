// Package variants builds the script and spelling variants of a dictionary
// query so a backend with only intra-script typo tolerance can still match
// words written in the other script or with a different diacritic.
package variants

import (
	"unicode"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/setia/htmldicts/internal/translit"
)

// CandidateTable maps a lower-cased character to the substitutes tried in its
// place when widening typo tolerance. It is not a script conversion.
type CandidateTable map[rune][]string

// DefaultCandidates are the common Ossetian spelling substitutions.
var DefaultCandidates = CandidateTable{
	'æ': {"ä", "a", "e"},
	'ä': {"æ", "a", "e"},
	'ū': {"u"},
	'ә': {"u", "y"},
	'ẜ': {"w"},
	'ğ': {"gh"},
	'š': {"sh"},
	'ž': {"zh"},
	'č': {"ch"},
}

// Expander generates query variants. It is safe for concurrent use.
type Expander struct {
	translit   *translit.Transliterator
	candidates CandidateTable
	cache      *lru.Cache[string, []string]
}

// Option configures an Expander.
type Option func(*Expander)

// WithTransliterator sets the transliterator used for script conversion.
func WithTransliterator(t *translit.Transliterator) Option {
	return func(e *Expander) {
		if t != nil {
			e.translit = t
		}
	}
}

// WithCandidates replaces the spelling substitution table.
func WithCandidates(c CandidateTable) Option {
	return func(e *Expander) {
		if c != nil {
			e.candidates = c
		}
	}
}

// WithCacheSize memoises AllScriptVariants for up to n distinct words.
// Zero or negative disables the cache.
func WithCacheSize(n int) Option {
	return func(e *Expander) {
		if n <= 0 {
			e.cache = nil
			return
		}
		cache, err := lru.New[string, []string](n)
		if err == nil {
			e.cache = cache
		}
	}
}

// New creates an Expander with the Ossetian defaults.
func New(opts ...Option) *Expander {
	e := &Expander{
		candidates: DefaultCandidates,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.translit == nil {
		e.translit = translit.New()
	}
	return e
}

// SpellingVariants returns word plus every string that differs from it in
// exactly one substituted position. The original word comes first.
func (e *Expander) SpellingVariants(word string) []string {
	out := newOrderedSet()
	out.add(word)

	runes := []rune(word)
	for i, r := range runes {
		subs, ok := e.candidates[unicode.ToLower(r)]
		if !ok {
			continue
		}
		prefix := string(runes[:i])
		suffix := string(runes[i+1:])
		for _, sub := range subs {
			out.add(prefix + sub + suffix)
		}
	}
	return out.items
}

// AllScriptVariants returns word, its lexicon spellings, its conversion to the
// other script and the spelling variants of its Latin form, deduplicated in
// generation order.
func (e *Expander) AllScriptVariants(word string) []string {
	if e.cache != nil {
		if cached, ok := e.cache.Get(word); ok {
			return append([]string(nil), cached...)
		}
	}

	out := newOrderedSet()
	out.add(word)

	for _, s := range e.translit.Special(word) {
		out.add(s)
	}

	if e.translit.IsCyrillic(word) {
		latin := e.translit.CyrillicToLatin(word)
		out.add(latin)
		out.addAll(e.SpellingVariants(latin))
	} else {
		out.add(e.translit.LatinToCyrillic(word))
		out.addAll(e.SpellingVariants(word))
	}

	if e.cache != nil {
		e.cache.Add(word, append([]string(nil), out.items...))
	}
	return out.items
}

// Transliterator returns the transliterator used by e.
func (e *Expander) Transliterator() *translit.Transliterator {
	return e.translit
}

type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]struct{})}
}

func (s *orderedSet) add(v string) {
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.items = append(s.items, v)
}

func (s *orderedSet) addAll(vs []string) {
	for _, v := range vs {
		s.add(v)
	}
}
