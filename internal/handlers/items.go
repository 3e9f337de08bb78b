package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"playground/internal/detail"

	"go.uber.org/zap"
)

// ItemsHandler dispatches everything under /items/:
//
//	GET  /items/{id}                   detail fragment
//	POST /items/{id}/reactions/{kind}  increment one reaction
//	POST /items/{id}/comments          add a comment
func (h *Handlers) ItemsHandler(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/items/"), "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		h.Render404(w)
		return
	}
	id := parts[0]

	switch {
	case len(parts) == 1:
		h.detailFragment(w, r, id)
	case len(parts) == 3 && parts[1] == "reactions":
		h.react(w, r, id, parts[2])
	case len(parts) == 2 && parts[1] == "comments":
		h.comment(w, r, id)
	default:
		h.Render404(w)
	}
}

func (h *Handlers) detailFragment(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodGet {
		h.Render405(w)
		return
	}
	d, err := h.controller.Select(r.Context(), id)
	if err != nil {
		if errors.Is(err, detail.ErrUnknownItem) {
			// Нет такого элемента: деталь не рендерим
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h.Render500(w, err.Error())
		return
	}
	h.renderTemplate(w, http.StatusOK, "detail", TemplateData{Detail: d, Selected: id})
}

func (h *Handlers) react(w http.ResponseWriter, r *http.Request, id, kind string) {
	if r.Method != http.MethodPost {
		writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	patch, err := h.controller.React(r.Context(), id, kind)
	if err != nil {
		switch {
		case errors.Is(err, detail.ErrUnknownItem):
			writeJSONError(w, http.StatusNotFound, "Unknown item")
		case errors.Is(err, detail.ErrUnknownReaction):
			writeJSONError(w, http.StatusBadRequest, "Unknown reaction")
		default:
			writeJSONError(w, http.StatusInternalServerError, "Failed to update reaction")
		}
		return
	}

	if !isAJAX(r) {
		http.Redirect(w, r, "/?item="+url.QueryEscape(id), http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"item":    patch.ItemID,
		"kind":    patch.Kind,
		"count":   patch.Count,
	})
}

func (h *Handlers) comment(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost {
		if isAJAX(r) {
			writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		} else {
			h.Render405(w)
		}
		return
	}

	out, err := h.controller.SubmitComment(r.Context(), id, r.FormValue("comment"))
	if err != nil {
		if errors.Is(err, detail.ErrUnknownItem) {
			if isAJAX(r) {
				writeJSONError(w, http.StatusNotFound, "Unknown item")
			} else {
				h.Render404(w)
			}
			return
		}
		h.Render500(w, err.Error())
		return
	}

	if !isAJAX(r) {
		if !out.Accepted {
			h.renderPage(w, r, http.StatusUnprocessableEntity, id, out.Message, "error")
			return
		}
		// PRG: обновление страницы не отправит комментарий повторно
		http.Redirect(w, r, "/?item="+url.QueryEscape(id)+"&saved=1", http.StatusSeeOther)
		return
	}

	if !out.Accepted {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"success": false,
			"message": out.Message,
		})
		return
	}

	var list bytes.Buffer
	if err := h.templates.ExecuteTemplate(&list, "comments", out.Comments); err != nil {
		zap.L().Error("comments render failed", zap.Error(err))
		writeJSONError(w, http.StatusInternalServerError, "Failed to render comments")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"message":       out.Message,
		"comments_html": list.String(),
		"count":         len(out.Comments),
	})
}
