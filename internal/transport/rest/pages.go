package rest

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
)

type page struct {
	name  string
	title string
}

var pages = []page{
	{name: "login", title: "Вход"},
	{name: "dashboard", title: "Дашборд"},
	{name: "users", title: "Пользователи"},
	{name: "events", title: "События пользователя"},
	{name: "messages", title: "Сообщения"},
	{name: "prompts", title: "Промпты"},
}

type pageData struct {
	Title string
	Page  string
}

// PagesHandler renders the admin HTML pages. Data is loaded by the pages
// themselves from the admin API.
type PagesHandler struct {
	templates map[string]*template.Template
	titles    map[string]string
	log       *slog.Logger
}

// NewPagesHandler parses templates/layout.html and one template per page
// from fsys.
func NewPagesHandler(fsys fs.FS, logger *slog.Logger) (*PagesHandler, error) {
	layout, err := template.ParseFS(fsys, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	h := &PagesHandler{
		templates: make(map[string]*template.Template, len(pages)),
		titles:    make(map[string]string, len(pages)),
		log:       logger.With("handler", "pages"),
	}
	for _, p := range pages {
		base, err := layout.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout: %w", err)
		}
		t, err := base.ParseFS(fsys, "templates/"+p.name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", p.name, err)
		}
		h.templates[p.name] = t
		h.titles[p.name] = p.title
	}
	return h, nil
}

// Page returns a handler rendering the named page.
func (h *PagesHandler) Page(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, ok := h.templates[name]
		if !ok {
			http.NotFound(w, r)
			return
		}

		var buf bytes.Buffer
		if err := t.ExecuteTemplate(&buf, "layout", pageData{Title: h.titles[name], Page: name}); err != nil {
			h.log.ErrorContext(r.Context(), "render page", slog.String("page", name), slog.String("error", err.Error()))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(buf.Bytes()) //nolint:errcheck
	}
}
