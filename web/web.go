package web

import "embed"

// Templates holds the embedded web/templates/*.html files.
// Renderers parse them with html/template.
//
//go:embed templates/*.html
var Templates embed.FS
