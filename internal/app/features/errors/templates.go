// internal/app/features/errors/templates.go
package errors

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
		Name:     "errors",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
