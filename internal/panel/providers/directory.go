package providers

import (
	"context"

	"github.com/go-resty/resty/v2"

	"github.com/NateStaxx/FetchDeck/internal/panel"
)

// DirectoryView is the rendered state of the public API directory panel.
type DirectoryView struct {
	Name        string
	Description string
	Category    string
	Auth        string
	HTTPS       string
	CORS        string
	Link        string
}

// DirectoryProvider shows the first entry of a public API catalog.
type DirectoryProvider struct {
	api upstream
}

func NewDirectoryProvider(client *resty.Client, baseURL string) *DirectoryProvider {
	return &DirectoryProvider{api: newUpstream(client, "directory", baseURL)}
}

func (p *DirectoryProvider) Fetch(ctx context.Context, _ panel.Input) (DirectoryView, error) {
	var payload struct {
		Count   int `json:"count"`
		Entries []struct {
			API         string `json:"API"`
			Description string `json:"Description"`
			Auth        string `json:"Auth"`
			HTTPS       bool   `json:"HTTPS"`
			Cors        string `json:"Cors"`
			Link        string `json:"Link"`
			Category    string `json:"Category"`
		} `json:"entries"`
	}
	if err := p.api.get(ctx, "/entries", nil, &payload); err != nil {
		return DirectoryView{}, err
	}
	if len(payload.Entries) == 0 {
		return DirectoryView{}, panel.Failf("directory payload without entries (count %d)", payload.Count)
	}

	e := payload.Entries[0]
	if e.API == "" || e.Link == "" {
		return DirectoryView{}, panel.Failf("directory entry without API name or link")
	}
	return DirectoryView{
		Name:        e.API,
		Description: e.Description,
		Category:    e.Category,
		Auth:        orNone(e.Auth),
		HTTPS:       yesNo(e.HTTPS),
		CORS:        orNone(e.Cors),
		Link:        e.Link,
	}, nil
}

func orNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func (p *DirectoryProvider) Panel() panel.Panel {
	return panel.Definition[DirectoryView]{
		Meta:  panel.Meta{Name: "directory", Title: "Public API Pick", Action: "Show API"},
		Fetch: p.Fetch,
		View:  view("directory"),
	}
}
