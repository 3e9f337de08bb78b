package models

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCommentText(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"empty", "", "", false},
		{"whitespace", " \t\n  ", "", false},
		{"trimmed", "  Great idea \n", "Great idea", true},
		{"inner spaces kept", "a  b", "a  b", true},
		{"byte order mark only", "\ufeff  ", "", false},
		{"byte order mark trimmed", "\ufeffhi\u00a0", "hi", true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := NormalizeCommentText(c.in)
			assert.Equal(t, c.ok, ok)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestNormalizeCommentTextTruncates(t *testing.T) {
	in := strings.Repeat("abcdefghij", 70) // 700 символов
	got, ok := NormalizeCommentText("   " + in + "   ")
	assert.True(t, ok)
	assert.Len(t, got, MaxCommentLen)
	assert.Equal(t, in[:MaxCommentLen], got)
}

func TestTruncateCountsRunes(t *testing.T) {
	in := strings.Repeat("ж", 601)
	got := Truncate(in, MaxCommentLen)
	assert.Equal(t, MaxCommentLen, utf8.RuneCountInString(got))
	assert.True(t, utf8.ValidString(got))

	assert.Equal(t, "short", Truncate("short", MaxCommentLen))
}

func TestRecordNormalize(t *testing.T) {
	var r Record
	r.Normalize()
	assert.Equal(t, EmptyRecord(), r)
	assert.Equal(t, 0, r.Count("thumbs"))
}

func TestFindReaction(t *testing.T) {
	k, ok := FindReaction(Reactions, "heart")
	assert.True(t, ok)
	assert.Equal(t, "❤️", k.Symbol)

	_, ok = FindReaction(Reactions, "rocket")
	assert.False(t, ok)
}
