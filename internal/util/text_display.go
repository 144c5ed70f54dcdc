package util

import (
	"strings"
	"unicode/utf8"
)

// TruncateRunes keeps the first maxRunes characters of s. The second return
// value reports whether anything was dropped.
func TruncateRunes(s string, maxRunes int) (string, bool) {
	if maxRunes <= 0 || utf8.RuneCountInString(s) <= maxRunes {
		return s, false
	}
	n := 0
	for i := range s {
		if n == maxRunes {
			return s[:i], true
		}
		n++
	}
	return s, false
}

// Preview returns the first maxRunes characters followed by "..." when s is longer.
func Preview(s string, maxRunes int) string {
	out, cut := TruncateRunes(s, maxRunes)
	if cut {
		return out + "..."
	}
	return out
}

func WordCount(s string) int {
	return len(strings.Fields(s))
}

func CharCount(s string) int {
	return utf8.RuneCountInString(s)
}
