package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Money formats a dollar amount with thousands separators. Negative amounts
// render with a leading minus, not parentheses.
func Money(v float64) string {
	neg := v < 0
	s := fmt.Sprintf("%.2f", math.Abs(v))

	dot := strings.IndexByte(s, '.')
	intPart, frac := s[:dot], s[dot:]
	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	out := "$" + strings.Join(groups, ",") + frac
	if neg {
		out = "-" + out
	}
	return out
}

// Date formats a timestamp as YYYY-MM-DD.
func Date(t time.Time) string {
	return t.Format("2006-01-02")
}

// DatePtr formats an optional timestamp, rendering a dim dash when unset.
func DatePtr(t *time.Time) string {
	if t == nil {
		return Dim("—")
	}
	return Date(*t)
}

// Minutes formats a minute count as "2h 30m".
func Minutes(mins int) string {
	h, m := mins/60, mins%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %dm", h, m)
	}
}

// ShortID returns the first eight characters of a UUID, or a placeholder
// when the ID is missing.
func ShortID(id string) string {
	if len(id) < 8 {
		return "--"
	}
	return id[:8]
}

// Truncate shortens s to max runes with an ellipsis.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}
