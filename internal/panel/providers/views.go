package providers

import (
	"embed"
	"html/template"
	"strings"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var views = template.Must(template.New("views").Funcs(template.FuncMap{
	"join": strings.Join,
}).ParseFS(templateFS, "templates/*.tmpl"))

func view(name string) *template.Template {
	t := views.Lookup(name + ".tmpl")
	if t == nil {
		panic("providers: missing template " + name)
	}
	return t
}
