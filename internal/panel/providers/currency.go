package providers

import (
	"context"
	"net/url"
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/NateStaxx/FetchDeck/internal/panel"
)

// MissingRate is shown for a currency the rates payload does not carry.
const MissingRate = "—"

type CurrencyRow struct {
	Code string
	Rate string
}

// CurrencyView is the rendered state of the currency panel.
type CurrencyView struct {
	Base string
	Date string
	Rows []CurrencyRow
}

// CurrencyProvider reads the latest Frankfurter rates for a fixed base and
// projects a fixed list of currency codes out of them.
type CurrencyProvider struct {
	api     upstream
	base    string
	symbols []string
}

func NewCurrencyProvider(client *resty.Client, baseURL, base string, symbols []string) *CurrencyProvider {
	return &CurrencyProvider{
		api:     newUpstream(client, "currency", baseURL),
		base:    base,
		symbols: symbols,
	}
}

func (p *CurrencyProvider) Fetch(ctx context.Context, _ panel.Input) (CurrencyView, error) {
	var payload struct {
		Base  string             `json:"base"`
		Date  string             `json:"date"`
		Rates map[string]float64 `json:"rates"`
	}
	if err := p.api.get(ctx, "/latest", url.Values{"from": {p.base}}, &payload); err != nil {
		return CurrencyView{}, err
	}
	if payload.Rates == nil || payload.Date == "" {
		return CurrencyView{}, panel.Failf("currency payload without rates or date")
	}

	return CurrencyView{
		Base: p.base,
		Date: payload.Date,
		Rows: projectRates(payload.Rates, p.symbols),
	}, nil
}

// projectRates returns one row per code, in order, using MissingRate for
// codes absent from rates.
func projectRates(rates map[string]float64, codes []string) []CurrencyRow {
	rows := make([]CurrencyRow, 0, len(codes))
	for _, code := range codes {
		row := CurrencyRow{Code: code, Rate: MissingRate}
		if v, ok := rates[code]; ok {
			row.Rate = strconv.FormatFloat(v, 'f', 4, 64)
		}
		rows = append(rows, row)
	}
	return rows
}

func (p *CurrencyProvider) Panel() panel.Panel {
	return panel.Definition[CurrencyView]{
		Meta:  panel.Meta{Name: "currency", Title: "Exchange Rates", Action: "Get rates"},
		Fetch: p.Fetch,
		View:  view("currency"),
	}
}
