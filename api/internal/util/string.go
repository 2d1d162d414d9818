package util

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// NormalizeText trims surrounding whitespace and composes the text to NFC,
// so "e" + U+0301 and "é" reach the model (and the journal hash) the same way.
func NormalizeText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func TruncateBytes(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}

// SplitRunes cuts s into chunks of at most n runes, preferring to break on a newline.
func SplitRunes(s string, n int) []string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return []string{s}
	}
	var out []string
	rs := []rune(s)
	for len(rs) > n {
		cut := n
		for i := n - 1; i > n/2; i-- {
			if rs[i] == '\n' {
				cut = i + 1
				break
			}
		}
		out = append(out, string(rs[:cut]))
		rs = rs[cut:]
	}
	if len(rs) > 0 {
		out = append(out, string(rs))
	}
	return out
}
