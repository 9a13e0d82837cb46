package api

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/example/shoe-store/internal/domain/catalog"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutTemplate = "layout.html"

// Renderer writes a page model as HTML.
type Renderer interface {
	Render(w http.ResponseWriter, status int, name string, data any) error
}

// HTMLRenderer renders pages from the embedded templates. Every page is
// parsed together with the shared layout.
type HTMLRenderer struct {
	pages map[string]*template.Template
}

var templateFuncs = template.FuncMap{
	"size":    catalog.FormatSize,
	"pageURL": pageURL,
	"eq64": func(id int64, raw string) bool {
		return raw != "" && strconv.FormatInt(id, 10) == raw
	},
}

func NewHTMLRenderer() (*HTMLRenderer, error) {
	names, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template, len(names))
	for _, path := range names {
		name := strings.TrimPrefix(path, "templates/")
		if name == layoutTemplate {
			continue
		}
		t, err := template.New(layoutTemplate).Funcs(templateFuncs).
			ParseFS(templateFS, "templates/"+layoutTemplate, path)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = t
	}
	return &HTMLRenderer{pages: pages}, nil
}

func (h *HTMLRenderer) Render(w http.ResponseWriter, status int, name string, data any) error {
	t, ok := h.pages[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, layoutTemplate, data); err != nil {
		return fmt.Errorf("execute template %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// pageURL links to another page of a listing, keeping the active filters.
func pageURL(filters string, page int) template.URL {
	q, _ := url.ParseQuery(filters)
	q.Set("page", strconv.Itoa(page))
	return template.URL("?" + q.Encode())
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// respondJSONError writes a JSON error response
func respondJSONError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
