package home

import (
	"embed"

	"github.com/dalemusser/attendhub/internal/app/resources"
	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	resources.LoadSharedTemplates()
	templates.Register(templates.Set{
		Name:     "home",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
