// Package util provides small text formatting helpers shared by the views
// and the command line output.
package util

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"
)

// Truncate shortens s to at most max runes, ending in "…" when cut
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	runes := []rune(s)
	return strings.TrimRight(string(runes[:max-1]), " ") + "…"
}

// Pluralize returns "1 story" or "3 stories" style counts
func Pluralize(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}

// FormatRating renders a 0-5 rating as stars followed by the number.
// - 4.5: "★★★★½ 4.5"
// - 3.2: "★★★☆☆ 3.2"
func FormatRating(r float64) string {
	r = math.Max(0, math.Min(5, r))
	full := int(r)
	half := r-float64(full) >= 0.5

	var b strings.Builder
	b.WriteString(strings.Repeat("★", full))
	empty := 5 - full
	if half {
		b.WriteString("½")
		empty--
	}
	b.WriteString(strings.Repeat("☆", empty))
	return fmt.Sprintf("%s %.1f", b.String(), r)
}

// FormatDurationCompact formats a duration in a compact format.
// - Under 1 second: "500ms"
// - Under 1 minute: "45.5s"
// - Under 1 hour: "5m30s"
// - 1 hour or more: "1h23m"
func FormatDurationCompact(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		mins := int(d.Minutes())
		secs := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", mins, secs)
	}
	hours := int(d.Hours())
	mins := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh%dm", hours, mins)
}
