package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var assetFS embed.FS

// staticFS exposes the embedded assets rooted at static/.
var staticFS fs.FS = func() fs.FS {
	sub, err := fs.Sub(assetFS, "static")
	if err != nil {
		return assetFS
	}
	return sub
}()

// Page template names.
const (
	pageLogin    = "login.html"
	pageRegister = "register.html"
	pageProfile  = "profile.html"
	pageNotFound = "notfound.html"
)

var templateFuncs = template.FuncMap{ //nolint:gochecknoglobals // static helpers
	"inc": func(i int) int { return i + 1 },
}

// pageData is what every template receives.
type pageData struct {
	Theme Theme
	Body  any
}

type renderer struct {
	pages map[string]*template.Template
	theme Theme
}

func newRenderer(theme Theme) (*renderer, error) {
	r := &renderer{pages: make(map[string]*template.Template), theme: theme}
	for _, page := range []string{pageLogin, pageRegister, pageProfile, pageNotFound} {
		t, err := template.New(page).Funcs(templateFuncs).ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrTemplate, page, err)
		}
		r.pages[page] = t
	}
	return r, nil
}

// render executes page into a buffer first so a template failure never
// leaves a half-written response.
func (r *renderer) render(w http.ResponseWriter, status int, page string, body any) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("%w: unknown page %q", ErrRender, page)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", pageData{Theme: r.theme, Body: body}); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrRender, page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
	return nil
}
