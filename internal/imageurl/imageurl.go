// Package imageurl turns the raw "Image" field of a story into an absolute
// CDN URL. Only the first image is ever used.
package imageurl

import (
	"strings"
	"unicode/utf8"
)

// BaseURL is the asset CDN every story image path is resolved against
const BaseURL = "https://ik.imagekit.io/dev24/"

// Placeholder images substituted when a story has no usable image
const (
	CardPlaceholder   = "https://via.placeholder.com/300x180/140a28/9c6dff?text=No+Image"
	DetailPlaceholder = "https://via.placeholder.com/800x500/1e0f46/bdc7ff?text=No+Image"
	AuthorPlaceholder = "https://via.placeholder.com/120x120?text=Author"
)

// Normalize converts an image field value into an absolute URL.
//
// A list yields its first element, a string yields its first comma separated
// segment. The path is trimmed and escaped as a URI component. Any other
// shape, or a path that cannot be escaped, reports false.
func Normalize(v any) (string, bool) {
	var first string
	switch img := v.(type) {
	case nil:
		return "", false
	case []string:
		if len(img) == 0 {
			return "", false
		}
		first = img[0]
	case []any:
		if len(img) == 0 {
			return "", false
		}
		s, ok := img[0].(string)
		if !ok {
			return "", false
		}
		first = s
	case string:
		first, _, _ = strings.Cut(img, ",")
	default:
		return "", false
	}

	first = strings.TrimSpace(first)
	if first == "" {
		return "", false
	}

	escaped, ok := EscapeComponent(first)
	if !ok {
		return "", false
	}
	return BaseURL + escaped, true
}

// Resolve returns the normalized URL or the given placeholder
func Resolve(v any, placeholder string) string {
	if u, ok := Normalize(v); ok {
		return u
	}
	return placeholder
}

const upperhex = "0123456789ABCDEF"

// EscapeComponent percent-encodes every byte of s outside A-Z a-z 0-9 and
// -_.!~*'(). Invalid UTF-8 cannot be encoded and reports false.
func EscapeComponent(s string) (string, bool) {
	if !utf8.ValidString(s) {
		return "", false
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String(), true
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
