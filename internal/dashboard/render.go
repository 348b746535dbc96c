package dashboard

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"CryptoAnalyst/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templateFS, "templates/dashboard.html"))

type page struct {
	Query string
	View  *View
	Error string
}

// Render writes the dashboard page for a report.
func Render(w io.Writer, r *model.Report) error {
	v := NewView(r)
	if err := pageTmpl.Execute(w, page{Query: r.Symbol, View: &v}); err != nil {
		return fmt.Errorf("render dashboard: %w", err)
	}
	return nil
}

// RenderError writes the page with the error panel shown and the dashboard hidden.
func RenderError(w io.Writer, query string) error {
	if err := pageTmpl.Execute(w, page{Query: query, Error: GenericError}); err != nil {
		return fmt.Errorf("render error page: %w", err)
	}
	return nil
}
