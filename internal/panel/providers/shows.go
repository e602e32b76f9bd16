package providers

import (
	"context"
	"sort"
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/NateStaxx/FetchDeck/internal/panel"
)

type ShowCard struct {
	Name     string
	ImageURL string
	Rating   float64
	Genres   []string
	Link     string
}

// RatingText formats the rating with one decimal.
func (c ShowCard) RatingText() string {
	return strconv.FormatFloat(c.Rating, 'f', 1, 64)
}

// ShowsView is the rendered state of the shows panel.
type ShowsView struct {
	Cards []ShowCard
}

type showEntry struct {
	Name   string   `json:"name"`
	URL    string   `json:"url"`
	Genres []string `json:"genres"`
	Rating struct {
		Average *float64 `json:"average"`
	} `json:"rating"`
	Image *struct {
		Medium   string `json:"medium"`
		Original string `json:"original"`
	} `json:"image"`
}

// ShowsProvider lists TVmaze shows and keeps the best rated ones.
type ShowsProvider struct {
	api   upstream
	limit int
}

func NewShowsProvider(client *resty.Client, baseURL string, limit int) *ShowsProvider {
	return &ShowsProvider{
		api:   newUpstream(client, "shows", baseURL),
		limit: limit,
	}
}

func (p *ShowsProvider) Fetch(ctx context.Context, _ panel.Input) (ShowsView, error) {
	var payload []showEntry
	if err := p.api.get(ctx, "/shows", nil, &payload); err != nil {
		return ShowsView{}, err
	}

	cards := topRated(payload, p.limit)
	if len(cards) == 0 {
		return ShowsView{}, panel.Failf("no rated shows with images among %d entries", len(payload))
	}
	return ShowsView{Cards: cards}, nil
}

// topRated drops entries without an image or a rating, orders the rest by
// rating descending (ties keep payload order) and keeps at most limit.
func topRated(entries []showEntry, limit int) []ShowCard {
	cards := make([]ShowCard, 0, len(entries))
	for _, e := range entries {
		if e.Image == nil || e.Rating.Average == nil {
			continue
		}
		img := e.Image.Medium
		if img == "" {
			img = e.Image.Original
		}
		if img == "" {
			continue
		}
		cards = append(cards, ShowCard{
			Name:     e.Name,
			ImageURL: img,
			Rating:   *e.Rating.Average,
			Genres:   e.Genres,
			Link:     e.URL,
		})
	}

	sort.SliceStable(cards, func(i, j int) bool {
		return cards[i].Rating > cards[j].Rating
	})

	if limit > 0 && len(cards) > limit {
		cards = cards[:limit]
	}
	return cards
}

func (p *ShowsProvider) Panel() panel.Panel {
	return panel.Definition[ShowsView]{
		Meta:  panel.Meta{Name: "shows", Title: "Top TV Shows", Action: "Load shows"},
		Fetch: p.Fetch,
		View:  view("shows"),
	}
}
