package providers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NateStaxx/FetchDeck/internal/panel"
)

const tenShows = `[
	{"name":"Under the Dome","url":"https://www.tvmaze.com/shows/1","genres":["Drama"],"rating":{"average":6.5},"image":{"medium":"https://img/1.jpg"}},
	{"name":"Person of Interest","genres":["Action","Crime"],"rating":{"average":8.8},"image":{"medium":"https://img/2.jpg"}},
	{"name":"No Image","rating":{"average":9.9},"image":null},
	{"name":"No Rating","rating":{"average":null},"image":{"medium":"https://img/4.jpg"}},
	{"name":"Arrow","rating":{"average":7.4},"image":{"medium":"https://img/5.jpg"}},
	{"name":"True Detective","rating":{"average":8.2},"image":{"medium":"https://img/6.jpg"}},
	{"name":"The 100","rating":{"average":7.7},"image":{"medium":"https://img/7.jpg"}},
	{"name":"Homeland","rating":{"average":8.2},"image":{"medium":"https://img/8.jpg"}},
	{"name":"Glee","rating":{"average":6.6},"image":{"original":"https://img/9-original.jpg"}},
	{"name":"Bitten","rating":{"average":7.5},"image":{"medium":"https://img/10.jpg"}}
]`

func TestTopRated(t *testing.T) {
	var entries []showEntry
	require.NoError(t, json.Unmarshal([]byte(tenShows), &entries))

	cards := topRated(entries, 6)
	require.Len(t, cards, 6)

	var names []string
	for _, c := range cards {
		names = append(names, c.Name)
	}
	// Ties keep payload order: True Detective precedes Homeland.
	assert.Equal(t, []string{"Person of Interest", "True Detective", "Homeland", "The 100", "Bitten", "Arrow"}, names)

	all := topRated(entries, 0)
	assert.Len(t, all, 8)
	assert.Equal(t, "https://img/9-original.jpg", all[len(all)-2].ImageURL)
}

func TestShowsPanel(t *testing.T) {
	srv := newUpstreamServer(t, map[string]http.HandlerFunc{
		"/shows": serveJSON(tenShows),
	})

	p := NewShowsProvider(newTestClient(), srv.URL, 6)
	view, err := p.Fetch(t.Context(), panel.Input{})
	require.NoError(t, err)
	require.NotEmpty(t, view.Cards)
	assert.LessOrEqual(t, len(view.Cards), 6)
	for _, c := range view.Cards[1:] {
		assert.GreaterOrEqual(t, view.Cards[0].Rating, c.Rating)
	}

	out := render(t, p.Panel(), panel.Input{})
	require.True(t, out.OK(), "%v", out.Err)
	html := string(out.Fragment)
	assert.Equal(t, 6, strings.Count(html, `class="card"`))
	assert.NotContains(t, html, "No Image")
	assert.NotContains(t, html, "No Rating")

	first := strings.Index(html, `class="card"`)
	require.GreaterOrEqual(t, first, 0)
	assert.Contains(t, html[first:first+300], "Person of Interest")
	assert.Contains(t, html, "★ 8.8")
	assert.Contains(t, html, "Action, Crime")
}

func TestProjectRates(t *testing.T) {
	rows := projectRates(map[string]float64{"EUR": 0.92, "GBP": 0.79}, []string{"EUR", "GBP", "JPY", "CAD", "MXN"})
	require.Len(t, rows, 5)
	assert.Equal(t, "0.9200", rows[0].Rate)
	for _, r := range rows[2:] {
		assert.Equal(t, MissingRate, r.Rate, r.Code)
	}
}
