package http

import (
	"embed"
	"html/template"
	"io"

	"github.com/fwojciec/docview"
	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

// templates renders the embedded page templates for echo.
type templates struct {
	t *template.Template
}

func newTemplates() *templates {
	return &templates{
		t: template.Must(template.ParseFS(templateFS, "templates/*.html")),
	}
}

func (t *templates) Render(w io.Writer, name string, data any, c echo.Context) error {
	return t.t.ExecuteTemplate(w, name, data)
}

// view is the data shared by every page.
type view struct {
	Name     string
	HomePage string
	DarkMode bool
	Notices  []docview.Notice

	Term     string
	Results  []string
	Document string
	Head     template.HTML
	Body     template.HTML
	Message  string
}
