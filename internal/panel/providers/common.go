package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"

	"github.com/NateStaxx/FetchDeck/internal/common"
	"github.com/NateStaxx/FetchDeck/internal/panel"
)

var (
	errUnexpected  = errors.New("unexpected status code")
	errCircuitOpen = errors.New("circuit breaker open")
)

// NewHTTPClient returns the resty client shared by all providers.
func NewHTTPClient(timeout time.Duration, userAgent string) *resty.Client {
	return resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json")
}

// upstream is one external JSON API guarded by its own circuit breaker.
type upstream struct {
	baseURL string
	headers map[string]string
	client  *resty.Client
	circuit *gobreaker.CircuitBreaker
}

func newUpstream(client *resty.Client, name, baseURL string) upstream {
	return upstream{
		baseURL: baseURL,
		client:  client,
		circuit: newBreaker(name),
	}
}

func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})
}

// breakerFailure maps the breaker's own rejections onto an unavailable
// failure and passes every other error through.
func breakerFailure(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return panel.Fail(panel.ReasonUnavailable, fmt.Errorf("%w: %v", errCircuitOpen, err))
	}
	return err
}

// get issues one GET request and decodes the JSON body into out. Every
// error it returns is a *panel.Failure. There are no retries.
func (u upstream) get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := common.JoinURL(u.baseURL, path)

	result, err := u.circuit.Execute(func() (interface{}, error) {
		resp, execErr := u.client.R().
			SetContext(ctx).
			SetHeaders(u.headers).
			SetQueryParamsFromValues(query).
			Get(endpoint)
		if execErr != nil {
			return nil, panel.Fail(panel.ReasonTransport, execErr)
		}
		if !resp.IsSuccess() {
			return nil, panel.Fail(panel.ReasonStatus, fmt.Errorf("%w: %d from %s", errUnexpected, resp.StatusCode(), endpoint))
		}
		return resp.Body(), nil
	})
	if err != nil {
		return breakerFailure(err)
	}

	body, ok := result.([]byte)
	if !ok {
		return panel.Fail(panel.ReasonTransport, fmt.Errorf("unexpected result type from circuit breaker"))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return panel.Fail(panel.ReasonPayload, fmt.Errorf("decode %s: %w", endpoint, err))
	}
	return nil
}
