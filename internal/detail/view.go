package detail

import (
	"html/template"
	"sort"
	"strings"
	"time"

	"playground/internal/models"
)

const defaultVisualNote = "I will add a visual or GIF for this exploration later."

// Detail is everything the detail template needs for one item.
type Detail struct {
	Item       models.Item
	DateLabel  string
	VisualNote string
	Reactions  []ReactionButton
	Comments   []CommentView
}

type ReactionButton struct {
	ID     string
	Symbol string
	Label  string
	Count  int
}

type CommentView struct {
	Text      string
	Timestamp int64
	Meta      string
}

func (c *Controller) buildDetail(item models.Item, rec models.Record) *Detail {
	d := &Detail{
		Item:       item,
		DateLabel:  FormatDate(item.Date),
		VisualNote: item.VisualNote,
		Comments:   c.commentViews(rec.Comments),
	}
	if d.VisualNote == "" {
		d.VisualNote = defaultVisualNote
	}
	// Только виды из каталога: "осиротевшие" счетчики остаются в хранилище, но не показываются
	for _, k := range c.reactions {
		d.Reactions = append(d.Reactions, ReactionButton{
			ID:     k.ID,
			Symbol: k.Symbol,
			Label:  k.Label,
			Count:  rec.Count(k.ID),
		})
	}
	return d
}

// commentViews returns the comments newest first. Storage order is not
// trusted; order between equal timestamps is unspecified.
func (c *Controller) commentViews(comments []models.Comment) []CommentView {
	sorted := SortNewestFirst(comments)
	views := make([]CommentView, 0, len(sorted))
	for _, cm := range sorted {
		views = append(views, CommentView{
			Text:      cm.Text,
			Timestamp: cm.Timestamp,
			Meta:      commentMeta(cm.Timestamp, c.loc),
		})
	}
	return views
}

// SortNewestFirst returns a copy of comments ordered by timestamp, descending.
func SortNewestFirst(comments []models.Comment) []models.Comment {
	out := append([]models.Comment(nil), comments...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp > out[j].Timestamp
	})
	return out
}

func commentMeta(ts int64, loc *time.Location) string {
	if ts <= 0 {
		return "Saved"
	}
	return "Saved on " + time.UnixMilli(ts).In(loc).Format("Jan 2")
}

// FormatDate renders an ISO date as "Nov 10, 2025". Anything unparsable is
// returned unchanged.
func FormatDate(s string) string {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("Jan 2, 2006")
		}
	}
	return s
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeHTML escapes the five HTML metacharacters.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// CommentHTML escapes stored comment text and keeps its line breaks as <br>.
// Every template that prints comment text goes through here.
func CommentHTML(s string) template.HTML {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = EscapeHTML(line)
	}
	return template.HTML(strings.Join(lines, "<br>"))
}
