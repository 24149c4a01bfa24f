// Package views renders the server-side HTML pages.
package views

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"strings"
)

//go:embed templates/*.html
var files embed.FS

var funcs = template.FuncMap{
	// toJSON is for <script type="application/json"> blocks.
	"toJSON": func(v interface{}) (template.JS, error) {
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return template.JS(b), nil
	},
	"same":  func(a, b interface{}) bool { return fmt.Sprint(a) == fmt.Sprint(b) },
	"lower": strings.ToLower,
}

var pages = template.Must(template.New("").Funcs(funcs).ParseFS(files, "templates/*.html"))

// Render executes a named template. Output is buffered so a failed render
// never leaves a half-written page.
func Render(w io.Writer, name string, data interface{}) error {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
