package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	herrors "github.com/setia/htmldicts/internal/errors"
)

func TestParseContextSize(t *testing.T) {
	for in, want := range map[string]ContextSize{
		"":         ContextDefault,
		"default":  ContextDefault,
		"Expanded": ContextExpanded,
		" full ":   ContextFull,
	} {
		got, err := ParseContextSize(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseContextSize("huge")
	assert.True(t, herrors.HasCode(err, herrors.ErrCodeInvalidContextSize))
}

func TestRequest_Validate(t *testing.T) {
	valid := Request{Query: "tærqūs", Limit: 10, LimitPerSource: 5, ContextSize: ContextDefault}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		modify func(*Request)
		code   string
	}{
		{"empty query", func(r *Request) { r.Query = "  " }, herrors.ErrCodeQueryEmpty},
		{"zero limit", func(r *Request) { r.Limit = 0 }, herrors.ErrCodeLimitOutOfRange},
		{"limit too large", func(r *Request) { r.Limit = 51 }, herrors.ErrCodeLimitOutOfRange},
		{"per source too large", func(r *Request) { r.LimitPerSource = 100 }, herrors.ErrCodeLimitOutOfRange},
		{"bad context", func(r *Request) { r.ContextSize = "huge" }, herrors.ErrCodeInvalidContextSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.modify(&r)
			err := r.Validate()
			require.Error(t, err)
			assert.True(t, herrors.HasCode(err, tt.code))
		})
	}
}

func TestRequest_WithDefaults(t *testing.T) {
	r := Request{Query: "q", ContextSize: "bogus"}.withDefaults()
	assert.Equal(t, DefaultLimit, r.Limit)
	assert.Equal(t, DefaultLimitPerSource, r.LimitPerSource)
	assert.Equal(t, ContextDefault, r.ContextSize)
}
