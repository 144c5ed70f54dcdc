package util

import "strings"

// SanitizeText strips NUL bytes and non-printing control characters that PDF
// extractors tend to leave in their output. Newlines and tabs survive.
func SanitizeText(s string) string {
	if s == "" {
		return s
	}
	s = strings.ReplaceAll(s, "\x00", "")

	r := make([]rune, 0, len(s))
	for _, ch := range s {
		if ch == '\n' || ch == '\r' || ch == '\t' {
			r = append(r, ch)
			continue
		}
		if ch < 0x20 || ch == 0x7f {
			continue
		}
		r = append(r, ch)
	}
	return strings.TrimSpace(string(r))
}
