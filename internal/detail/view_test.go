package detail

import (
	"testing"
	"time"

	"playground/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestEscapeHTML(t *testing.T) {
	assert.Equal(t,
		"&lt;script&gt;alert(&quot;x&quot;)&lt;/script&gt; &amp; it&#39;s",
		EscapeHTML(`<script>alert("x")</script> & it's`))
	assert.Equal(t, "&amp;lt;", EscapeHTML("&lt;"))
}

func TestCommentHTMLKeepsLineBreaks(t *testing.T) {
	got := CommentHTML("one <b>\r\ntwo")
	assert.Equal(t, "one &lt;b&gt;<br>two", string(got))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "Oct 5, 2025", FormatDate("2025-10-05"))
	assert.Equal(t, "Oct 5, 2025", FormatDate("2025-10-05T10:00:00Z"))
	assert.Equal(t, "someday", FormatDate("someday"))
}

func TestSortNewestFirstDoesNotMutateInput(t *testing.T) {
	in := []models.Comment{{Text: "a", Timestamp: 1}, {Text: "b", Timestamp: 2}}
	out := SortNewestFirst(in)
	assert.Equal(t, "b", out[0].Text)
	assert.Equal(t, "a", in[0].Text)
}

func TestCommentMeta(t *testing.T) {
	ts := time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC).UnixMilli()
	assert.Equal(t, "Saved on Mar 7", commentMeta(ts, time.UTC))
	assert.Equal(t, "Saved", commentMeta(0, time.UTC))
}
