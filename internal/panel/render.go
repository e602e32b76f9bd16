package panel

import (
	"html/template"
	"strings"
)

// LoadingHTML is the markup a region shows while its request is in flight.
const LoadingHTML template.HTML = `<div class="loading" aria-label="Loading"></div>`

var errorTmpl = template.Must(template.New("error").Parse(`<p class="muted">⚠️ {{.}}</p>`))

// ErrorHTML renders the error fragment for err.
func ErrorHTML(err error) template.HTML {
	var b strings.Builder
	// The template is a constant and the argument a plain string.
	_ = errorTmpl.Execute(&b, Message(err))
	return template.HTML(b.String())
}
