package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strings"

	"playground/internal/content"
	"playground/internal/detail"
	"playground/internal/models"
	"playground/internal/web"

	"go.uber.org/zap"
)

const pageTitle = "Thesis Playground"

// TemplateData holds data passed to HTML templates.
type TemplateData struct {
	Title        string
	Items        []models.Item
	Selected     string
	Detail       *detail.Detail
	Message      string
	MessageClass string
	Error        string
}

// Handlers serves the gallery pages and the feedback endpoints.
type Handlers struct {
	catalog    *content.Catalog
	controller *detail.Controller
	templates  *template.Template
}

func New(catalog *content.Catalog, controller *detail.Controller) (*Handlers, error) {
	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}
	return &Handlers{catalog: catalog, controller: controller, templates: tmpl}, nil
}

// renderTemplate рендерит в буфер, чтобы не отправлять частичный вывод при ошибке.
func (h *Handlers) renderTemplate(w http.ResponseWriter, status int, templateName string, data TemplateData) {
	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		zap.L().Error("template render failed", zap.String("template", templateName), zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func (h *Handlers) renderError(w http.ResponseWriter, status int, message string) {
	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, "error", TemplateData{Error: message}); err != nil {
		zap.L().Error("error page render failed", zap.Error(err))
		http.Error(w, message, status)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// HTTP Error Handlers
func (h *Handlers) Render400(w http.ResponseWriter, message string) {
	h.renderError(w, http.StatusBadRequest, "400 Bad Request: "+message)
}

func (h *Handlers) Render404(w http.ResponseWriter) {
	h.renderError(w, http.StatusNotFound, "404 Not Found")
}

func (h *Handlers) Render405(w http.ResponseWriter) {
	h.renderError(w, http.StatusMethodNotAllowed, "405 Method Not Allowed")
}

func (h *Handlers) Render500(w http.ResponseWriter, message string) {
	zap.L().Error("internal server error", zap.String("message", message))
	h.renderError(w, http.StatusInternalServerError, "500 Internal Server Error")
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{"error": message})
}

// isAJAX проверяет, пришел ли запрос от скрипта (fetch), а не от обычной формы.
func isAJAX(r *http.Request) bool {
	return r.Header.Get("X-Requested-With") == "XMLHttpRequest" ||
		strings.Contains(r.Header.Get("Accept"), "application/json")
}

// HomeHandler renders the card grid and the detail of ?item= (the first item by default).
// ?saved=1 shows the comment confirmation after a form post redirect.
// An unknown item renders the grid alone.
func (h *Handlers) HomeHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		h.Render404(w)
		return
	}
	if r.Method != http.MethodGet {
		h.Render405(w)
		return
	}

	selected := r.URL.Query().Get("item")
	if selected == "" {
		if first, ok := h.catalog.First(); ok {
			selected = first.ID
		}
	}
	message, messageClass := "", ""
	if r.URL.Query().Get("saved") == "1" {
		message, messageClass = detail.MsgCommentSaved, "success"
	}
	h.renderPage(w, r, http.StatusOK, selected, message, messageClass)
}

func (h *Handlers) renderPage(w http.ResponseWriter, r *http.Request, status int, selected, message, messageClass string) {
	data := TemplateData{
		Title:        pageTitle,
		Items:        h.catalog.Items(),
		Message:      message,
		MessageClass: messageClass,
	}
	if selected != "" {
		d, err := h.controller.Select(r.Context(), selected)
		if err == nil {
			data.Detail = d
			data.Selected = selected
		} else if !errors.Is(err, detail.ErrUnknownItem) {
			h.Render500(w, err.Error())
			return
		}
	}
	h.renderTemplate(w, status, "layout", data)
}

// ProtectStatic отдает только css и js, остальное 404.
func (h *Handlers) ProtectStatic(fs http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, ".css"):
			w.Header().Set("Content-Type", "text/css; charset=utf-8")
		case strings.HasSuffix(r.URL.Path, ".js"):
			w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
		default:
			h.Render404(w)
			return
		}
		fs.ServeHTTP(w, r)
	}
}
