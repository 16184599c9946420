package notify

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded notification templates so callers can
// extend or replace individual layouts while keeping the rest.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
