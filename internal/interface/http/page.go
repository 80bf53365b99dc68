package http

import (
	"embed"
	"html/template"

	"github.com/yanqian/shelter-console/internal/domain/forecast"
	"github.com/yanqian/shelter-console/internal/domain/viewstate"
)

const pageName = "index.html.tmpl"

//go:embed templates/*.tmpl
var templates embed.FS

type pageData struct {
	View    viewstate.Snapshot
	Form    forecast.FormInput
	Catalog forecast.Catalog
}

func parsePage() *template.Template {
	return template.Must(template.New(pageName).ParseFS(templates, "templates/*.tmpl"))
}
