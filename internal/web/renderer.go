package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"

	"go.uber.org/zap"

	"dashboard/internal/domain"
	apperrors "dashboard/internal/errors"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageStore is the slice of the page cache a cached render needs.
type PageStore interface {
	Get(path string) ([]byte, bool)
	Generation(path string) uint64
	SetIfGeneration(path string, gen uint64, body []byte) bool
}

type Renderer struct {
	templates *template.Template
	logger    *zap.Logger
}

func NewRenderer(logger *zap.Logger) (*Renderer, error) {
	funcs := template.FuncMap{
		"currency": domain.FormatCurrency,
		"price":    func(p float64) string { return fmt.Sprintf("$%.2f", p) },
	}

	tmpl, err := template.New("pages").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	return &Renderer{templates: tmpl, logger: logger}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}) error {
	if err := r.templates.ExecuteTemplate(w, name, data); err != nil {
		return apperrors.NewInternalError("rendering template "+name, err)
	}
	return nil
}

// Page renders into a buffer first so a template failure never leaves a
// half-written 200 behind.
func (r *Renderer) Page(w http.ResponseWriter, status int, name string, data interface{}) {
	var buf bytes.Buffer
	if err := r.Render(&buf, name, data); err != nil {
		r.logger.Error("render failed", zap.String("template", name), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	writeHTML(w, status, buf.Bytes())
}

// Error renders the shared error page.
func (r *Renderer) Error(w http.ResponseWriter, status int, title, message string) {
	r.Page(w, status, "error", ErrorView{Title: title, Message: message})
}

// Cached serves path from store when a snapshot exists. Otherwise load runs,
// its result is rendered with template name and written. The body is stored
// only if path was not revalidated while load ran.
func (r *Renderer) Cached(w http.ResponseWriter, store PageStore, path, name string, load func() (interface{}, error)) error {
	if body, ok := store.Get(path); ok {
		w.Header().Set("X-Cache", "HIT")
		writeHTML(w, http.StatusOK, body)
		return nil
	}

	gen := store.Generation(path)
	data, err := load()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, name, data); err != nil {
		return err
	}

	if !store.SetIfGeneration(path, gen, buf.Bytes()) {
		r.logger.Debug("snapshot skipped after revalidation", zap.String("path", path))
	}
	w.Header().Set("X-Cache", "MISS")
	writeHTML(w, http.StatusOK, buf.Bytes())
	return nil
}

func writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body)
}
