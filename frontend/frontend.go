// Package frontend holds the HTML templates and static assets, embedded into the binary.
package frontend

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed templates/*.tmpl
var templates embed.FS

//go:embed static
var static embed.FS

// Templates parses all page templates. Each template is named after its file, e.g. "trace.tmpl".
func Templates() (*template.Template, error) {
	return template.ParseFS(templates, "templates/*.tmpl")
}

// Static returns the static assets rooted at the static directory.
func Static() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		// the directory is embedded, fs.Sub only fails on an invalid name
		panic(err)
	}
	return sub
}
