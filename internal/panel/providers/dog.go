package providers

import (
	"context"

	"github.com/go-resty/resty/v2"

	"github.com/NateStaxx/FetchDeck/internal/panel"
)

// DogView is the rendered state of the dog panel.
type DogView struct {
	ImageURL string
}

// DogProvider fetches a random image from the Dog CEO API.
type DogProvider struct {
	api upstream
}

func NewDogProvider(client *resty.Client, baseURL string) *DogProvider {
	return &DogProvider{api: newUpstream(client, "dog", baseURL)}
}

func (p *DogProvider) Fetch(ctx context.Context, _ panel.Input) (DogView, error) {
	var payload struct {
		Message string `json:"message"`
		Status  string `json:"status"`
	}
	if err := p.api.get(ctx, "/breeds/image/random", nil, &payload); err != nil {
		return DogView{}, err
	}
	if payload.Message == "" {
		return DogView{}, panel.Failf("dog payload without message (status %q)", payload.Status)
	}
	return DogView{ImageURL: payload.Message}, nil
}

func (p *DogProvider) Panel() panel.Panel {
	return panel.Definition[DogView]{
		Meta:  panel.Meta{Name: "dog", Title: "Random Dog", Action: "Fetch dog"},
		Fetch: p.Fetch,
		View:  view("dog"),
	}
}
