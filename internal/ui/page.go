// Package ui renders the bootstrap page the bridge serves at "/".
//
// The page is rendered once at startup with the token and base URL baked
// in, so it always talks to the instance that served it.
package ui

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/index.html.tmpl
var templates embed.FS

var indexTemplate = template.Must(template.ParseFS(templates, "templates/index.html.tmpl"))

// PageData is baked into the page.
type PageData struct {
	Title   string
	Version string
	Token   string
	Base    string
	Remote  string
}

// Render executes the page template. Values are escaped for the context
// they land in, so the token is emitted as a quoted JS string.
func Render(data PageData) ([]byte, error) {
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render bootstrap page: %w", err)
	}
	return buf.Bytes(), nil
}
