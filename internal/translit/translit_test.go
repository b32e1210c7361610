package translit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransliterator_LatinToCyrillic(t *testing.T) {
	tr := New()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "lexicon word", input: "tærqūs", want: "тæрхъус"},
		{name: "lexicon word with ä", input: "tärqūs", want: "тæрхъус"},
		{name: "lexicon word with o", input: "tærqos", want: "тæрхъус"},
		{name: "plain word", input: "ævsarm", want: "æвсарм"},
		{name: "glottal labialized trigraph", input: "k'ẜym", want: "къуым"},
		{name: "labialized digraph", input: "kẜyd", want: "хъуыд"},
		{name: "voiced labialized digraph", input: "gẜyr", want: "гъуыр"},
		{name: "schwa letter", input: "ә", want: "у"},
		{name: "glottal stop", input: "c'æ", want: "цъæ"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tr.LatinToCyrillic(tt.input))
		})
	}
}

func TestTransliterator_CyrillicToLatin(t *testing.T) {
	tr := New()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "lexicon word", input: "тæрхъус", want: "tærqūs"},
		{name: "plain word", input: "æвсарм", want: "ævsarm"},
		{name: "labialized trigraph", input: "къуым", want: "k'ẜym"},
		{name: "labialized uvular", input: "хъуыд", want: "kẜyd"},
		{name: "voiced labialized", input: "гъуыр", want: "gẜyr"},
		{name: "hard sign maps to nothing", input: "ъ", want: ""},
		{name: "affricate digraph", input: "дзæуын", want: "dzæuyn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tr.CyrillicToLatin(tt.input))
		})
	}
}

func TestTransliterator_LongestMatchWins(t *testing.T) {
	tr := New()

	// "dzh" must not decompose into "dz"+"h" (дзх) or "d"+"z"+"h" (дзх).
	got := tr.LatinToCyrillic("dzhaba")
	assert.Equal(t, "джаба", got)
	assert.NotContains(t, got, "дзх")

	// "k'ẜ" must not decompose into "k'"+"ẜ" or "k"+"'"+"ẜ".
	got = tr.LatinToCyrillic("ak'ẜa")
	assert.Equal(t, "акъуа", got)
	assert.Contains(t, got, "къу")

	// "хъу" must map as one unit, not "хъ"+"у" (qu).
	got = tr.CyrillicToLatin("хъуыд")
	assert.True(t, strings.HasPrefix(got, "kẜ"), "got %q", got)
}

func TestTransliterator_PreservesTokenCase(t *testing.T) {
	tr := New()

	tests := []struct {
		name  string
		input string
		dir   Direction
		want  string
	}{
		{name: "single letter", input: "Ævsarm", dir: LatinToCyrillic, want: "Æвсарм"},
		{name: "trigraph keeps table casing after first rune", input: "Dzhaba", dir: LatinToCyrillic, want: "Джаба"},
		{name: "labialized", input: "Kẜyd", dir: LatinToCyrillic, want: "Хъуыд"},
		{name: "cyrillic digraph", input: "Хъæд", dir: CyrillicToLatin, want: "Qæd"},
		{name: "multi-rune output", input: "Ю", dir: CyrillicToLatin, want: "Ju"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tr.Convert(tt.input, tt.dir))
		})
	}
}

func TestTransliterator_PassesThroughUnknownInput(t *testing.T) {
	tr := New()

	for _, input := range []string{"123", "!?.,", "日本語", "ﬁ"} {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, input, tr.LatinToCyrillic(input))
			assert.Equal(t, input, tr.CyrillicToLatin(input))
		})
	}

	report := tr.ConvertReport("日本", LatinToCyrillic)
	assert.Equal(t, "日本", report.Text)
	assert.False(t, report.FullyMapped)

	report = tr.ConvertReport("ævsarm 42", LatinToCyrillic)
	assert.Equal(t, "æвсарм 42", report.Text)
	assert.True(t, report.FullyMapped)
}

func TestTransliterator_LexiconRoundTrip(t *testing.T) {
	tr := New()

	for cyr, spellings := range DefaultCyrillicLexicon {
		latin := tr.CyrillicToLatin(cyr)
		require.Equal(t, spellings[0], latin)
		assert.Equal(t, cyr, tr.LatinToCyrillic(latin), "round trip of %q", cyr)
	}

	for latin := range DefaultLatinLexicon {
		cyr := tr.LatinToCyrillic(latin)
		back := tr.CyrillicToLatin(cyr)
		assert.Contains(t, DefaultCyrillicLexicon[cyr], latin)
		assert.Equal(t, cyr, tr.LatinToCyrillic(back))
	}

	report := tr.ConvertReport("TÆRQŪS", LatinToCyrillic)
	assert.True(t, report.Special)
	assert.Equal(t, "тæрхъус", report.Text)
}

func TestTransliterator_IsCyrillic(t *testing.T) {
	tr := New()

	assert.True(t, tr.IsCyrillic("тæрхъус"))
	assert.True(t, tr.IsCyrillic("Мад"))
	assert.True(t, tr.IsCyrillic("tærqūs"), "æ is a cyrillic table key")
	assert.True(t, tr.IsCyrillic("mæ"))
	assert.True(t, tr.IsCyrillic("æ"))
	assert.False(t, tr.IsCyrillic("hello"))
	assert.False(t, tr.IsCyrillic(""))
}

func TestTransliterator_Detect(t *testing.T) {
	tr := New()

	assert.Equal(t, CyrillicToLatin, tr.Detect("тæрхъус"))
	assert.Equal(t, CyrillicToLatin, tr.Detect("Мад"))
	assert.Equal(t, LatinToCyrillic, tr.Detect("tærqūs"))
	assert.Equal(t, LatinToCyrillic, tr.Detect("æ"))
	assert.Equal(t, LatinToCyrillic, tr.Detect("hello"))
	assert.Equal(t, LatinToCyrillic, tr.Detect(""))
}

func TestTransliterator_LexiconResolvesBothDirections(t *testing.T) {
	tr := New()

	report := tr.ConvertReport("tærqūs", CyrillicToLatin)
	assert.Equal(t, "тæрхъус", report.Text)
	assert.True(t, report.Special)

	assert.Equal(t, "tærqūs", tr.LatinToCyrillic("тæрхъус"))
	assert.Equal(t, "mæ", tr.CyrillicToLatin("mæ"), "unmapped letters pass through")
}

func TestTransliterator_Special(t *testing.T) {
	tr := New()

	assert.Equal(t, []string{"тæрхъус"}, tr.Special("Tærqos"))
	assert.Equal(t, []string{"tærqūs", "tærqos", "tärqūs", "tärqos"}, tr.Special("тæрхъус"))
	assert.Nil(t, tr.Special("ævsarm"))

	// Callers cannot mutate the lexicon through the returned slice.
	got := tr.Special("тæрхъус")
	got[0] = "x"
	assert.Equal(t, "tærqūs", tr.Special("тæрхъус")[0])
}

func TestNew_WithCustomTables(t *testing.T) {
	tr := New(
		WithTables(Table{"SH": "ш", "s": "с", "h": "х"}, Table{"ш": "sh"}),
		WithLexicon(Lexicon{}, Lexicon{}),
	)

	assert.Equal(t, "шс", tr.LatinToCyrillic("shs"), "table keys are lower-cased on construction")
	assert.Equal(t, "sh", tr.CyrillicToLatin("ш"))
	assert.Equal(t, "тæрхъус", tr.CyrillicToLatin("тæрхъус"), "custom lexicon replaces defaults")
	assert.Equal(t, CyrillicToLatin, tr.Detect("Ш"))
	assert.Equal(t, LatinToCyrillic, tr.Detect("q"))
}

func TestDirection_String(t *testing.T) {
	assert.Equal(t, "latin-to-cyrillic", LatinToCyrillic.String())
	assert.Equal(t, "cyrillic-to-latin", CyrillicToLatin.String())
	assert.Equal(t, "unknown", Direction(9).String())
}
