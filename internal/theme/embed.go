package theme

import (
	"embed"
	"text/template"
)

//go:embed templates/*.css
var embeddedTemplates embed.FS

// badgeTemplate is parsed once; the embedded file is part of the binary
// so a parse failure is a build defect.
var badgeTemplate = template.Must(template.ParseFS(embeddedTemplates, "templates/badge.css"))
