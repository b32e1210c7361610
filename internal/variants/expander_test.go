package variants

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/setia/htmldicts/internal/translit"
)

func TestExpander_SpellingVariants(t *testing.T) {
	e := New()

	t.Run("includes original first", func(t *testing.T) {
		got := e.SpellingVariants("tærqūs")
		require.NotEmpty(t, got)
		assert.Equal(t, "tærqūs", got[0])
		assert.ElementsMatch(t, []string{"tærqūs", "tärqūs", "tarqūs", "terqūs", "tærqus"}, got)
	})

	t.Run("each variant differs in exactly one position", func(t *testing.T) {
		word := "æžä"
		for _, v := range e.SpellingVariants(word)[1:] {
			assert.Equal(t, 1, changedPositions(word, v), "variant %q", v)
		}
	})

	t.Run("multi-character substitutes", func(t *testing.T) {
		assert.ElementsMatch(t, []string{"ğaš", "ghaš", "ğash"}, e.SpellingVariants("ğaš"))
	})

	t.Run("upper-case letters are looked up lower-cased", func(t *testing.T) {
		assert.ElementsMatch(t, []string{"Æ", "ä", "a", "e"}, e.SpellingVariants("Æ"))
	})

	t.Run("no candidates yields only the word", func(t *testing.T) {
		assert.Equal(t, []string{"dictionary"}, e.SpellingVariants("dictionary"))
	})

	t.Run("duplicates collapse", func(t *testing.T) {
		e := New(WithCandidates(CandidateTable{'a': {"b", "b"}}))
		assert.Equal(t, []string{"a", "b"}, e.SpellingVariants("a"))
	})
}

func TestExpander_AllScriptVariants(t *testing.T) {
	e := New()

	t.Run("latin lexicon word with æ", func(t *testing.T) {
		// æ is a cyrillic table key, so the word takes the cyrillic branch
		// and the lexicon resolves it to its cyrillic spelling.
		got := e.AllScriptVariants("tærqūs")
		assert.Equal(t, []string{"tærqūs", "тæрхъус", "тäрхъус", "тaрхъус", "тeрхъус"}, got)
	})

	t.Run("latin lexicon word without æ", func(t *testing.T) {
		got := e.AllScriptVariants("tärqūs")
		assert.Equal(t, []string{"tärqūs", "тæрхъус", "tærqūs", "tarqūs", "terqūs", "tärqus"}, got)
	})

	t.Run("words with æ keep their letters", func(t *testing.T) {
		assert.Equal(t, []string{"mæ", "mä", "ma", "me"}, e.AllScriptVariants("mæ"))
		assert.Equal(t, []string{"bæx", "bäx", "bax", "bex"}, e.AllScriptVariants("bæx"))
		assert.NotContains(t, e.AllScriptVariants("mæ"), "мæ")
		assert.NotContains(t, e.AllScriptVariants("bæx"), "бæх")
	})

	t.Run("cyrillic lexicon word", func(t *testing.T) {
		got := e.AllScriptVariants("тæрхъус")
		assert.Equal(t, []string{
			"тæрхъус", "tærqūs", "tærqos", "tärqūs", "tärqos", "tarqūs", "terqūs", "tærqus",
		}, got)
	})

	t.Run("latin word is converted to cyrillic", func(t *testing.T) {
		got := e.AllScriptVariants("dzhaba")
		assert.Equal(t, []string{"dzhaba", "джаба"}, got)
	})

	t.Run("cyrillic word gets latin spelling variants", func(t *testing.T) {
		got := e.AllScriptVariants("гъуыр")
		assert.Equal(t, "гъуыр", got[0])
		assert.Contains(t, got, "gẜyr")
		assert.Contains(t, got, "gwyr")
	})

	t.Run("always contains the input", func(t *testing.T) {
		for _, w := range []string{"", "tærqūs", "тæрхъус", "Dzhaba", "k'ẜym", "hello world", "42"} {
			assert.Contains(t, e.AllScriptVariants(w), w)
		}
	})

	t.Run("unmapped words expand only to themselves", func(t *testing.T) {
		for _, w := range []string{"123", "日本語", "!?", "٣٤"} {
			assert.Equal(t, []string{w}, e.AllScriptVariants(w))
		}
	})

	t.Run("deterministic order", func(t *testing.T) {
		first := e.AllScriptVariants("ğæš")
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, e.AllScriptVariants("ğæš"))
		}
	})
}

func TestExpander_Cache(t *testing.T) {
	e := New(WithCacheSize(4))

	first := e.AllScriptVariants("tærqūs")
	first[0] = "mutated"

	second := e.AllScriptVariants("tærqūs")
	assert.Equal(t, "tærqūs", second[0], "cached slice must not be shared with callers")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Contains(t, e.AllScriptVariants("тæрхъус"), "tærqūs")
		}()
	}
	wg.Wait()
}

func TestNew_WithTransliterator(t *testing.T) {
	tr := translit.New(translit.WithLexicon(translit.Lexicon{}, translit.Lexicon{}))
	e := New(WithTransliterator(tr), WithCacheSize(0))

	assert.Same(t, tr, e.Transliterator())
	got := e.AllScriptVariants("tärqos")
	assert.Contains(t, got, "тæрхъос")
	assert.NotContains(t, got, "тæрхъус")
}

func changedPositions(a, b string) int {
	ar, br := []rune(a), []rune(b)
	// Multi-rune substitutes shift the tail; compare from both ends.
	n := 0
	for n < len(ar) && n < len(br) && ar[n] == br[n] {
		n++
	}
	m := 0
	for m < len(ar)-n && m < len(br)-n && ar[len(ar)-1-m] == br[len(br)-1-m] {
		m++
	}
	return len(ar) - n - m
}
