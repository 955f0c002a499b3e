package chart

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/nakamasato/xot/internal/thought"
)

// PlotlyURL is the plotly.js bundle loaded by rendered pages.
const PlotlyURL = "https://cdn.plot.ly/plotly-2.35.2.min.js"

//go:embed templates/*.html
var templates embed.FS

var pageTemplate = template.Must(template.ParseFS(templates, "templates/page.html"))

// Page is a standalone chart page for one result.
type Page struct {
	Title       string
	Question    string
	Mode        thought.Mode
	FinalAnswer string
	Figure      Figure
	Nodes       []thought.Node
}

type pageData struct {
	Page
	ModeName  string
	PlotlyURL string
}

// WriteHTML renders p as a self contained HTML document.
func WriteHTML(w io.Writer, p Page) error {
	if p.Title == "" {
		p.Title = "x-of-Thought: Advanced Reasoning Visualization"
	}
	data := pageData{Page: p, ModeName: p.Mode.DisplayName(), PlotlyURL: PlotlyURL}
	if err := pageTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render chart page: %w", err)
	}
	return nil
}
