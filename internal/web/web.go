// Package web carries the HTML templates and static assets.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"strings"

	"playground/internal/detail"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Funcs are the helpers available to every template.
var Funcs = template.FuncMap{
	"formatDate":  detail.FormatDate,
	"commentText": detail.CommentHTML,
	"join":        strings.Join,
	"badge": func(i int) string {
		if i == 0 {
			return "Latest"
		}
		return "In progress"
	},
}

// Templates parses all embedded templates.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(Funcs).ParseFS(templateFS, "templates/*.html")
}

// Static returns the asset tree rooted at static/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic("web: " + err.Error())
	}
	return sub
}
