package imageurl

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/robertguss/scifi-stories-go/internal/domain"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
		ok       bool
	}{
		{
			name:     "list takes the first element",
			input:    []any{"a.png", "b.png"},
			expected: BaseURL + "a.png",
			ok:       true,
		},
		{
			name:     "typed string list takes the first element",
			input:    []string{"a.png", "b.png"},
			expected: BaseURL + "a.png",
			ok:       true,
		},
		{
			name:     "comma separated string takes the first segment",
			input:    "a.png,b.png",
			expected: BaseURL + "a.png",
			ok:       true,
		},
		{
			name:     "segment is trimmed",
			input:    "  cover.jpg  , other.jpg",
			expected: BaseURL + "cover.jpg",
			ok:       true,
		},
		{
			name:     "spaces and slashes are escaped",
			input:    []any{" space ship/v2.png "},
			expected: BaseURL + "space%20ship%2Fv2.png",
			ok:       true,
		},
		{
			name:     "unicode is utf-8 percent encoded",
			input:    "étoile.png",
			expected: BaseURL + "%C3%A9toile.png",
			ok:       true,
		},
		{
			name:     "unreserved marks pass through",
			input:    "a-b_c.d!e~f*g'h(i).png",
			expected: BaseURL + "a-b_c.d!e~f*g'h(i).png",
			ok:       true,
		},
		{
			name:  "nil yields nothing",
			input: nil,
		},
		{
			name:  "empty list yields nothing",
			input: []any{},
		},
		{
			name:  "empty typed list yields nothing",
			input: []string{},
		},
		{
			name:  "non string list head yields nothing",
			input: []any{42.0, "b.png"},
		},
		{
			name:  "empty string yields nothing",
			input: "",
		},
		{
			name:  "blank first segment yields nothing",
			input: "  ,b.png",
		},
		{
			name:  "number yields nothing",
			input: 12.0,
		},
		{
			name:  "object yields nothing",
			input: map[string]any{"url": "a.png"},
		},
		{
			name:  "invalid utf-8 cannot be escaped",
			input: "bad\xffname.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Normalize(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNormalize_ListAndStringAgree(t *testing.T) {
	fromList, ok := Normalize(domain.ListImage("a.png", "b.png").Value())
	assert.True(t, ok)

	fromString, ok := Normalize(domain.StringImage("a.png,b.png").Value())
	assert.True(t, ok)

	assert.Equal(t, fromList, fromString)
	assert.Equal(t, BaseURL+"a.png", fromList)
}

func TestResolve(t *testing.T) {
	assert.Equal(t, BaseURL+"a.png", Resolve("a.png", CardPlaceholder))
	assert.Equal(t, CardPlaceholder, Resolve(nil, CardPlaceholder))
	assert.Equal(t, DetailPlaceholder, Resolve([]any{}, DetailPlaceholder))
}

func TestEscapeComponent(t *testing.T) {
	got, ok := EscapeComponent("a b&c=d?e#f")
	assert.True(t, ok)
	assert.Equal(t, "a%20b%26c%3Dd%3Fe%23f", got)

	_, ok = EscapeComponent("\xc3\x28")
	assert.False(t, ok)
}
