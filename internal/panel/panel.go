package panel

import (
	"bytes"
	"context"
	"html/template"
	"strings"
)

// Field describes one user-supplied input of a panel.
type Field struct {
	Name        string   `json:"name"`
	Label       string   `json:"label"`
	Placeholder string   `json:"placeholder,omitempty"`
	Options     []string `json:"options,omitempty"`
}

// Meta is the static description of a panel used to lay out the page.
type Meta struct {
	Name   string  `json:"name"`
	Title  string  `json:"title"`
	Action string  `json:"action"`
	Fields []Field `json:"fields,omitempty"`
}

// Target is the id of the page region the panel renders into.
func (m Meta) Target() string {
	return m.Name + "-output"
}

// Input holds the raw field values of one invocation.
type Input map[string]string

// Get returns the trimmed value for key, or fallback when it is blank.
func (in Input) Get(key, fallback string) string {
	if v := strings.TrimSpace(in[key]); v != "" {
		return v
	}
	return fallback
}

// Panel is one self-contained fetch and render unit.
type Panel interface {
	Describe() Meta
	Load(ctx context.Context, in Input) (template.HTML, error)
}

// Definition binds a typed fetch step to the template that renders its view
// model. Fetch owns request building and payload validation; the template
// only ever sees a complete view model.
type Definition[T any] struct {
	Meta  Meta
	Fetch func(ctx context.Context, in Input) (T, error)
	View  *template.Template
}

func (d Definition[T]) Describe() Meta {
	return d.Meta
}

func (d Definition[T]) Load(ctx context.Context, in Input) (template.HTML, error) {
	view, err := d.Fetch(ctx, in)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := d.View.Execute(&buf, view); err != nil {
		return "", Fail(ReasonRender, err)
	}
	return template.HTML(buf.String()), nil
}
