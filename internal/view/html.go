package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("view").Funcs(template.FuncMap{
	// Background and Colors come from the theme loader, never from request data.
	"css": func(s string) template.CSS { return template.CSS(s) },
	"url": func(s string) template.URL { return template.URL(s) },
	"percent": func(f float64) string { return fmt.Sprintf("%.0f%%", f*100) },
}).ParseFS(templateFS, "templates/*.html.tmpl"))

// Page writes the full HTML document for s.
func Page(w io.Writer, s Screen) error {
	return templates.ExecuteTemplate(w, "page.html.tmpl", s)
}

// Stage writes only the part of the page that changes between
// interactions. The live display swaps it in place.
func Stage(w io.Writer, s Screen) error {
	return templates.ExecuteTemplate(w, "stage.html.tmpl", s)
}
