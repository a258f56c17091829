package quakemap

import (
	"embed"
	"encoding/json"
	"html/template"
	"io/fs"
	"path"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// Built-in template styles.
const (
	StylePlain  = "plain"
	StyleTitled = "titled"
)

//go:embed templates/*.html
var templates embed.FS

// Renderer turns plot points into an HTML document.
type Renderer interface {
	Render(points []Point, title string) (string, error)
}

// TemplateRenderer renders maps through an html/template document.
type TemplateRenderer struct {
	tpl *template.Template
}

// NewTemplateRenderer returns a renderer for one of the built-in
// styles.
func NewTemplateRenderer(style string) (*TemplateRenderer, error) {
	switch style {
	case StylePlain, StyleTitled:
	default:
		return nil, eris.Wrapf(ErrUnknownStyle, "%q", style)
	}
	return newRenderer(templates, "templates/"+style+".html")
}

// NewCustomRenderer parses the named template from the given
// filesystem. Both arguments are required.
func NewCustomRenderer(fsys fs.FS, name string) (*TemplateRenderer, error) {
	if fsys == nil {
		return nil, eris.Wrap(ErrRendererConfig, "template filesystem not supplied")
	}
	if name == "" {
		return nil, eris.Wrap(ErrRendererConfig, "template name not supplied")
	}
	return newRenderer(fsys, name)
}

func newRenderer(fsys fs.FS, name string) (*TemplateRenderer, error) {
	tpl, err := template.New(path.Base(name)).ParseFS(fsys, name)
	if err != nil {
		return nil, eris.Wrapf(err, "parse template %s", name)
	}
	return &TemplateRenderer{tpl: tpl}, nil
}

// Render executes the template with the plotted points and feed title.
func (r *TemplateRenderer) Render(points []Point, title string) (string, error) {
	rows, err := markerRows(points)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	data := struct {
		Title string
		Count int
		Rows  template.JS
	}{
		Title: title,
		Count: len(points),
		Rows:  rows,
	}
	if err := r.tpl.Execute(&buf, data); err != nil {
		return "", eris.Wrap(err, "execute template")
	}
	return buf.String(), nil
}

// markerRows serializes points as a literal JSON array of
// [lat, lon, "M<mag>: <place>"] rows for embedding in the map script.
func markerRows(points []Point) (template.JS, error) {
	rows := make([][]any, 0, len(points))
	for _, p := range points {
		label := "M" + strconv.FormatFloat(p.Mag, 'f', -1, 64) + ": " + p.Place
		rows = append(rows, []any{p.Lat, p.Lon, label})
	}
	b, err := json.Marshal(rows)
	if err != nil {
		return "", eris.Wrap(err, "marshal marker rows")
	}
	return template.JS(b), nil
}
