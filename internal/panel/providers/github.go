package providers

import (
	"context"
	"net/url"

	"github.com/go-resty/resty/v2"

	"github.com/NateStaxx/FetchDeck/internal/panel"
)

// GitHubView is the rendered state of the GitHub profile panel.
type GitHubView struct {
	Login       string
	Name        string
	AvatarURL   string
	ProfileURL  string
	Bio         string
	Location    string
	PublicRepos int
	Followers   int
	Following   int
}

// GitHubProvider looks up one configured GitHub user.
type GitHubProvider struct {
	api  upstream
	user string
}

func NewGitHubProvider(client *resty.Client, baseURL, user string) *GitHubProvider {
	api := newUpstream(client, "github", baseURL)
	api.headers = map[string]string{"Accept": "application/vnd.github+json"}
	return &GitHubProvider{api: api, user: user}
}

func (p *GitHubProvider) Fetch(ctx context.Context, _ panel.Input) (GitHubView, error) {
	var payload struct {
		Login       string  `json:"login"`
		Name        *string `json:"name"`
		AvatarURL   string  `json:"avatar_url"`
		HTMLURL     string  `json:"html_url"`
		Bio         *string `json:"bio"`
		Location    *string `json:"location"`
		PublicRepos int     `json:"public_repos"`
		Followers   int     `json:"followers"`
		Following   int     `json:"following"`
	}
	if err := p.api.get(ctx, "/users/"+url.PathEscape(p.user), nil, &payload); err != nil {
		return GitHubView{}, err
	}
	if payload.Login == "" || payload.AvatarURL == "" || payload.HTMLURL == "" {
		return GitHubView{}, panel.Failf("github payload for %q without login, avatar or profile url", p.user)
	}

	name := deref(payload.Name)
	if name == "" {
		name = payload.Login
	}
	return GitHubView{
		Login:       payload.Login,
		Name:        name,
		AvatarURL:   payload.AvatarURL,
		ProfileURL:  payload.HTMLURL,
		Bio:         deref(payload.Bio),
		Location:    deref(payload.Location),
		PublicRepos: payload.PublicRepos,
		Followers:   payload.Followers,
		Following:   payload.Following,
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (p *GitHubProvider) Panel() panel.Panel {
	return panel.Definition[GitHubView]{
		Meta:  panel.Meta{Name: "github", Title: "GitHub Profile", Action: "Load profile"},
		Fetch: p.Fetch,
		View:  view("github"),
	}
}
