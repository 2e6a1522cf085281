package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// StoryStatus is the raw status string reported by the story API
type StoryStatus string

const (
	StatusNew        StoryStatus = "New"
	StatusInProgress StoryStatus = "In Progress"
	StatusCompleted  StoryStatus = "Completed"
	StatusPublished  StoryStatus = "Published"
)

// Story is a single fiction entry returned by the story API.
// Stories are treated as immutable once fetched.
type Story struct {
	ID          string      `json:"_id"`
	Title       string      `json:"Title,omitempty"`
	Description string      `json:"Description,omitempty"`
	Status      StoryStatus `json:"Status,omitempty"`
	Image       ImageField  `json:"Image"`
	Adventure   *Adventure  `json:"Storyadvenure,omitempty"`
	Author      *Author     `json:"author,omitempty"`
}

// Adventure carries the optional adventure sub-title of a story
type Adventure struct {
	Title string `json:"Storytitle,omitempty"`
}

// Author describes the writer of a story. Only the name and bio are
// expected to be strings; the other fields are display-only and decode
// leniently so a malformed value never rejects the whole story.
type Author struct {
	Name         string     `json:"name,omitempty"`
	Bio          string     `json:"bio,omitempty"`
	Image        ImageField `json:"image"`
	Publications Number     `json:"publications"`
	Rating       Number     `json:"rating"`
}

// PublicationsCount returns the number of publications, 0 when unknown
func (a *Author) PublicationsCount() int {
	if a == nil {
		return 0
	}
	n, ok := a.Publications.Float64()
	if !ok || n < 0 || n > math.MaxInt32 {
		return 0
	}
	return int(n)
}

// RatingValue returns the author rating, DefaultAuthorRating when unknown
func (a *Author) RatingValue() float64 {
	if a == nil {
		return DefaultAuthorRating
	}
	r, ok := a.Rating.Float64()
	if !ok || r == 0 {
		return DefaultAuthorRating
	}
	return r
}

// PhotoURL returns the author image when it is a non-blank string
func (a *Author) PhotoURL() string {
	if a == nil {
		return ""
	}
	s, ok := a.Image.Value().(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// Number is a numeric field the API sends either as a JSON number or as a
// numeric string. Any other value decodes as unknown instead of failing.
type Number struct {
	value float64
	valid bool
}

// NumberOf builds a known Number
func NumberOf(v float64) Number {
	return Number{value: v, valid: true}
}

// Float64 returns the value and whether it is known
func (n Number) Float64() (float64, bool) {
	return n.value, n.valid
}

// UnmarshalJSON implements json.Unmarshaler
func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number{}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	switch v := v.(type) {
	case float64:
		*n = NumberOf(v)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			*n = NumberOf(f)
		}
	}
	return nil
}

// MarshalJSON implements json.Marshaler. Unknown values encode as null.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.value)
}

// Display defaults used when optional story fields are absent
const (
	DefaultCardTitle    = "Untitled Story"
	DefaultDetailTitle  = "N/A"
	DefaultDescription  = "No description available."
	DefaultAuthorName   = "Unknown Author"
	DefaultAuthorBio    = "No author information available."
	DefaultAuthorRating = 4.5
)

// EffectiveStatus maps the open-ended status string onto the three
// statuses the application understands. Anything unknown is New.
func (s Story) EffectiveStatus() StoryStatus {
	switch s.Status {
	case StatusPublished, StatusCompleted:
		return StatusCompleted
	case StatusInProgress:
		return StatusInProgress
	default:
		return StatusNew
	}
}

// AdventureTitle returns the adventure sub-title or an empty string
func (s Story) AdventureTitle() string {
	if s.Adventure == nil {
		return ""
	}
	return s.Adventure.Title
}

// IsZero reports whether the story carries no data at all
func (s Story) IsZero() bool {
	return s.ID == "" && s.Title == "" && s.Description == "" &&
		s.Status == "" && s.Image.IsEmpty() && s.Adventure == nil && s.Author == nil
}

// ImageField holds the raw "Image" value of a story. The API sends either a
// comma separated string, a list of strings or nothing at all, so the decoded
// JSON value is kept as-is and interpreted by the imageurl package.
type ImageField struct {
	value any
}

// StringImage builds an ImageField holding a string
func StringImage(s string) ImageField {
	return ImageField{value: s}
}

// ListImage builds an ImageField holding a list of path segments
func ListImage(paths ...string) ImageField {
	list := make([]any, len(paths))
	for i, p := range paths {
		list[i] = p
	}
	return ImageField{value: list}
}

// RawImage builds an ImageField from an arbitrary decoded JSON value
func RawImage(v any) ImageField {
	return ImageField{value: v}
}

// Value returns the decoded JSON value (nil, string, []any, or anything else)
func (f ImageField) Value() any {
	return f.value
}

// IsEmpty reports whether the field is absent, null or an empty string/list
func (f ImageField) IsEmpty() bool {
	switch v := f.value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []any:
		return len(v) == 0
	default:
		return false
	}
}

// UnmarshalJSON implements json.Unmarshaler
func (f *ImageField) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		f.value = nil
		return nil
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	f.value = v
	return nil
}

// MarshalJSON implements json.Marshaler
func (f ImageField) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.value)
}
