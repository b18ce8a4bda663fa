package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
)

//go:embed templates/*.html static/*
var assetsFS embed.FS

// pageNames lists every page template. Each page is parsed together with the
// shared layout so {{template "layout" .}} resolves.
var pageNames = []string{
	"login.html",
	"signup.html",
	"articles.html",
	"article.html",
	"error.html",
}

// parsePages parses all embedded page templates at startup. A broken
// template is a programming error and surfaces immediately.
func parsePages() (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.ParseFS(assetsFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return pages, nil
}

// render executes a page template with the given data. Render failures after
// the status line is written can only be logged.
func (h *Handler) render(w http.ResponseWriter, status int, page string, data any) {
	tmpl, ok := h.pages[page]
	if !ok {
		h.logger.Error("unknown template", "page", page)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		h.logger.Error("failed to render template", "page", page, "error", err)
	}
}

// renderError renders the shared error page.
func (h *Handler) renderError(w http.ResponseWriter, status int, message string) {
	h.render(w, status, "error.html", errorView{
		Status:  status,
		Text:    http.StatusText(status),
		Message: message,
	})
}
