package providers

import (
	"context"
	"net/url"

	"github.com/go-resty/resty/v2"

	"github.com/NateStaxx/FetchDeck/internal/common"
	"github.com/NateStaxx/FetchDeck/internal/panel"
)

// CatView is the rendered state of the cat panel.
type CatView struct {
	ImageURL string
	Tags     []string
}

// CatProvider asks Cat as a Service for a random cat and builds its image URL.
type CatProvider struct {
	api upstream
}

func NewCatProvider(client *resty.Client, baseURL string) *CatProvider {
	return &CatProvider{api: newUpstream(client, "cat", baseURL)}
}

func (p *CatProvider) Fetch(ctx context.Context, _ panel.Input) (CatView, error) {
	var payload struct {
		ID       string   `json:"id"`
		LegacyID string   `json:"_id"`
		Tags     []string `json:"tags"`
	}
	if err := p.api.get(ctx, "/cat", url.Values{"json": {"true"}}, &payload); err != nil {
		return CatView{}, err
	}

	id := payload.ID
	if id == "" {
		id = payload.LegacyID
	}
	if id == "" {
		return CatView{}, panel.Failf("cat payload without id")
	}

	return CatView{
		ImageURL: common.JoinURL(p.api.baseURL, "/cat/"+url.PathEscape(id)),
		Tags:     payload.Tags,
	}, nil
}

func (p *CatProvider) Panel() panel.Panel {
	return panel.Definition[CatView]{
		Meta:  panel.Meta{Name: "cat", Title: "Random Cat", Action: "Fetch cat"},
		Fetch: p.Fetch,
		View:  view("cat"),
	}
}
