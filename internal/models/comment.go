package models

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxCommentLen is the maximum comment length in characters (runes).
const MaxCommentLen = 600

// Comment is one free-text note left on an item.
type Comment struct {
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"` // миллисекунды с эпохи, часы устройства
}

// NormalizeCommentText trims the input and cuts it to MaxCommentLen runes.
// ok is false when nothing but whitespace was given.
func NormalizeCommentText(raw string) (text string, ok bool) {
	text = strings.TrimFunc(raw, isTrimmable)
	if text == "" {
		return "", false
	}
	return Truncate(text, MaxCommentLen), true
}

// isTrimmable matches unicode whitespace plus the byte order mark.
func isTrimmable(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// Truncate returns the first n runes of s. Not word-aware.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
