// Package translit converts Ossetian words between the Latin scholarly
// transliteration and Cyrillic script.
//
// Conversion is a greedy longest-match scan over mapping tables whose tokens
// are one to three runes long. Whole-word lexicon entries take precedence over
// token mapping. Unmapped input is passed through unchanged, so conversion
// never fails.
package translit

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Direction selects the conversion direction.
type Direction int

const (
	// LatinToCyrillic converts Latin transliteration to Cyrillic.
	LatinToCyrillic Direction = iota
	// CyrillicToLatin converts Cyrillic to Latin transliteration.
	CyrillicToLatin
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case LatinToCyrillic:
		return "latin-to-cyrillic"
	case CyrillicToLatin:
		return "cyrillic-to-latin"
	default:
		return "unknown"
	}
}

// Table maps a lower-cased source token to its counterpart in the other script.
type Table map[string]string

// Lexicon maps a whole lower-cased word to its accepted spellings in the other
// script. The first spelling is canonical.
type Lexicon map[string][]string

// Conversion is the outcome of a single conversion.
type Conversion struct {
	Text string
	// FullyMapped is false when at least one letter had no table entry and was
	// copied through verbatim.
	FullyMapped bool
	// Special is true when the word was resolved by the lexicon.
	Special bool
}

// Transliterator converts words between scripts. It is immutable after
// construction and safe for concurrent use.
type Transliterator struct {
	latin    Table
	cyrillic Table

	latinLexicon    Lexicon
	cyrillicLexicon Lexicon

	latinMax    int
	cyrillicMax int
}

// Option configures a Transliterator.
type Option func(*Transliterator)

// WithTables replaces the Latin→Cyrillic and Cyrillic→Latin mapping tables.
func WithTables(latin, cyrillic Table) Option {
	return func(t *Transliterator) {
		if latin != nil {
			t.latin = latin
		}
		if cyrillic != nil {
			t.cyrillic = cyrillic
		}
	}
}

// WithLexicon replaces the special-case lexicons. Latin holds Latin words with
// Cyrillic spellings; cyrillic holds Cyrillic words with Latin spellings.
func WithLexicon(latin, cyrillic Lexicon) Option {
	return func(t *Transliterator) {
		if latin != nil {
			t.latinLexicon = latin
		}
		if cyrillic != nil {
			t.cyrillicLexicon = cyrillic
		}
	}
}

// New creates a Transliterator with the Ossetian tables unless overridden.
// Tables and lexicons are copied with lower-cased keys.
func New(opts ...Option) *Transliterator {
	t := &Transliterator{
		latin:           DefaultLatinTable,
		cyrillic:        DefaultCyrillicTable,
		latinLexicon:    DefaultLatinLexicon,
		cyrillicLexicon: DefaultCyrillicLexicon,
	}
	for _, opt := range opts {
		opt(t)
	}

	t.latin, t.latinMax = copyTable(t.latin)
	t.cyrillic, t.cyrillicMax = copyTable(t.cyrillic)
	t.latinLexicon = copyLexicon(t.latinLexicon)
	t.cyrillicLexicon = copyLexicon(t.cyrillicLexicon)
	return t
}

// Convert converts word in the given direction.
func (t *Transliterator) Convert(word string, dir Direction) string {
	return t.ConvertReport(word, dir).Text
}

// LatinToCyrillic converts a Latin word to Cyrillic.
func (t *Transliterator) LatinToCyrillic(word string) string {
	return t.Convert(word, LatinToCyrillic)
}

// CyrillicToLatin converts a Cyrillic word to Latin.
func (t *Transliterator) CyrillicToLatin(word string) string {
	return t.Convert(word, CyrillicToLatin)
}

// ConvertReport converts word and reports whether every letter was mapped.
func (t *Transliterator) ConvertReport(word string, dir Direction) Conversion {
	if word == "" {
		return Conversion{FullyMapped: true}
	}

	table, lexicon, maxLen := t.forDirection(dir)

	// Lexicon entries resolve in either direction, own lexicon first.
	key := strings.ToLower(word)
	spellings, ok := lexicon[key]
	if !ok {
		spellings, ok = t.otherLexicon(dir)[key]
	}
	if ok && len(spellings) > 0 {
		return Conversion{Text: spellings[0], FullyMapped: true, Special: true}
	}

	runes := []rune(word)
	var sb strings.Builder
	sb.Grow(len(word))
	fully := true

	for i := 0; i < len(runes); {
		n, mapped, ok := longestMatch(table, runes, i, maxLen)
		if !ok {
			if unicode.IsLetter(runes[i]) {
				fully = false
			}
			sb.WriteRune(runes[i])
			i++
			continue
		}
		if unicode.IsUpper(runes[i]) {
			mapped = upperFirst(mapped)
		}
		sb.WriteString(mapped)
		i += n
	}

	return Conversion{Text: sb.String(), FullyMapped: fully}
}

// IsCyrillic reports whether any lower-cased rune of word is a key of the
// Cyrillic table. Letters shared by both scripts, such as æ, count.
func (t *Transliterator) IsCyrillic(word string) bool {
	for _, r := range strings.ToLower(word) {
		if _, ok := t.cyrillic[string(r)]; ok {
			return true
		}
	}
	return false
}

// Special returns the lexicon spellings for word from either lexicon.
func (t *Transliterator) Special(word string) []string {
	key := strings.ToLower(word)
	if s, ok := t.latinLexicon[key]; ok {
		return append([]string(nil), s...)
	}
	if s, ok := t.cyrillicLexicon[key]; ok {
		return append([]string(nil), s...)
	}
	return nil
}

// Detect picks the conversion direction for word. Only runes unique to the
// Cyrillic table select CyrillicToLatin, so "ævsarm" stays Latin.
func (t *Transliterator) Detect(word string) Direction {
	for _, r := range strings.ToLower(word) {
		key := string(r)
		if _, ok := t.cyrillic[key]; !ok {
			continue
		}
		if _, shared := t.latin[key]; !shared {
			return CyrillicToLatin
		}
	}
	return LatinToCyrillic
}

func (t *Transliterator) forDirection(dir Direction) (Table, Lexicon, int) {
	if dir == CyrillicToLatin {
		return t.cyrillic, t.cyrillicLexicon, t.cyrillicMax
	}
	return t.latin, t.latinLexicon, t.latinMax
}

func (t *Transliterator) otherLexicon(dir Direction) Lexicon {
	if dir == CyrillicToLatin {
		return t.latinLexicon
	}
	return t.cyrillicLexicon
}

// longestMatch tries slices of maxLen runes down to one rune starting at i.
func longestMatch(table Table, runes []rune, i, maxLen int) (int, string, bool) {
	for n := maxLen; n >= 1; n-- {
		if i+n > len(runes) {
			continue
		}
		if mapped, ok := table[strings.ToLower(string(runes[i:i+n]))]; ok {
			return n, mapped, true
		}
	}
	return 0, "", false
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func copyTable(src Table) (Table, int) {
	dst := make(Table, len(src))
	maxLen := 1
	for k, v := range src {
		key := strings.ToLower(k)
		dst[key] = v
		if n := utf8.RuneCountInString(key); n > maxLen {
			maxLen = n
		}
	}
	return dst, maxLen
}

func copyLexicon(src Lexicon) Lexicon {
	dst := make(Lexicon, len(src))
	for k, v := range src {
		dst[strings.ToLower(k)] = append([]string(nil), v...)
	}
	return dst
}
