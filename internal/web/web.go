package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templatesFS embed.FS

// MustTemplates parses the embedded page templates. The templates ship
// inside the binary, so a parse failure is a build defect and panics.
func MustTemplates() *template.Template {
	return template.Must(template.ParseFS(templatesFS, "templates/*.html"))
}
