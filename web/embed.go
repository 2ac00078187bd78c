// Package web содержит встроенные HTML шаблоны дашборда.
package web

import (
	"embed"
	"html/template"
	"time"
)

//go:embed templates
var templateData embed.FS

var funcs = template.FuncMap{
	"timestamp": func(t time.Time) string {
		return t.Format("2006-01-02 15:04:05-07:00")
	},
	"optionalTime": func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.Format("2006-01-02")
	},
}

// Templates разбирает все шаблоны; точка входа - "dashboard.html"
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(templateData, "templates/*.html")
}
