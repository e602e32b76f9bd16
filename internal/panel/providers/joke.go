package providers

import (
	"context"

	"github.com/go-resty/resty/v2"

	"github.com/NateStaxx/FetchDeck/internal/panel"
)

// JokeView is the rendered state of the joke panel.
type JokeView struct {
	IconURL string
	Text    string
}

// JokeProvider fetches a random joke from chucknorris.io.
type JokeProvider struct {
	api upstream
}

func NewJokeProvider(client *resty.Client, baseURL string) *JokeProvider {
	return &JokeProvider{api: newUpstream(client, "joke", baseURL)}
}

func (p *JokeProvider) Fetch(ctx context.Context, _ panel.Input) (JokeView, error) {
	var payload struct {
		IconURL string `json:"icon_url"`
		Value   string `json:"value"`
	}
	if err := p.api.get(ctx, "/jokes/random", nil, &payload); err != nil {
		return JokeView{}, err
	}
	if payload.Value == "" {
		return JokeView{}, panel.Failf("joke payload without value")
	}
	return JokeView{IconURL: payload.IconURL, Text: payload.Value}, nil
}

func (p *JokeProvider) Panel() panel.Panel {
	return panel.Definition[JokeView]{
		Meta:  panel.Meta{Name: "joke", Title: "Random Joke", Action: "Tell joke"},
		Fetch: p.Fetch,
		View:  view("joke"),
	}
}
