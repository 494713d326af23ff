package output

import (
	"fmt"
	"strings"
	"time"
)

// Redact hides a secret for display. Values shorter than five characters are
// fully masked; longer ones keep their first and last character.
func Redact(value string) string {
	runes := []rune(value)
	if len(runes) < 5 {
		return strings.Repeat("*", len(runes))
	}
	return string(runes[0]) + strings.Repeat("*", len(runes)-2) + string(runes[len(runes)-1])
}

// Pluralize picks singular or plural based on count. With no explicit plural
// an "s" is appended.
func Pluralize(count int, singular string, plural ...string) string {
	if count == 1 {
		return singular
	}
	if len(plural) > 0 {
		return plural[0]
	}
	return singular + "s"
}

// FormatList joins items for a sentence: "a", "a & b", "a, b, & c"
func FormatList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " & " + items[1]
	}
	return strings.Join(items[:len(items)-1], ", ") + ", & " + items[len(items)-1]
}

func formatLatency(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}
