// Package finderapi is the HTTP client the terminal frontend uses to talk to
// the search API.
package finderapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"hotel_finder/internal/adapters/observability"
	"hotel_finder/internal/domain"
)

const service = "finder_api"

type Client struct {
	base string
	hc   *http.Client
	rl   *rate.Limiter
}

func New(base string, rps int) (*Client, error) {
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid API base URL %q", base)
	}
	if rps <= 0 {
		rps = 10
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 20 * time.Second},
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// ---- Public API ----

func (c *Client) SearchHotels(ctx context.Context, q string) ([]domain.Hotel, error) {
	var out []domain.Hotel
	return out, c.get(ctx, c.searchURL(domain.Hotels, q), string(domain.Hotels), &out)
}

func (c *Client) SearchCities(ctx context.Context, q string) ([]domain.City, error) {
	var out []domain.City
	return out, c.get(ctx, c.searchURL(domain.Cities, q), string(domain.Cities), &out)
}

func (c *Client) SearchCountries(ctx context.Context, q string) ([]domain.Country, error) {
	var out []domain.Country
	return out, c.get(ctx, c.searchURL(domain.Countries, q), string(domain.Countries), &out)
}

// GetHotel returns nil, nil when the API answers null.
func (c *Client) GetHotel(ctx context.Context, id string) (*domain.Hotel, error) {
	var out *domain.Hotel
	return out, c.get(ctx, c.lookupURL(domain.Hotels, id), string(domain.Hotels)+"/{id}", &out)
}

func (c *Client) GetCity(ctx context.Context, id string) (*domain.City, error) {
	var out *domain.City
	return out, c.get(ctx, c.lookupURL(domain.Cities, id), string(domain.Cities)+"/{id}", &out)
}

func (c *Client) GetCountry(ctx context.Context, id string) (*domain.Country, error) {
	var out *domain.Country
	return out, c.get(ctx, c.lookupURL(domain.Countries, id), string(domain.Countries)+"/{id}", &out)
}

// ---- Internals ----

var (
	ErrNotFound = errors.New("finder api: not found")
)

// StatusError carries a non-OK HTTP status and the error message the API sent.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("bad status %d", e.Status)
	}
	return fmt.Sprintf("bad status %d: %s", e.Status, e.Message)
}

func (c *Client) searchURL(coll domain.Collection, q string) string {
	v := url.Values{}
	v.Set("search", q)
	return c.base + "/" + coll.String() + "?" + v.Encode()
}

func (c *Client) lookupURL(coll domain.Collection, id string) string {
	return c.base + "/" + coll.String() + "/" + url.PathEscape(id)
}

// get performs one rate-limited GET and decodes the JSON body into out.
// Failures are returned as-is; the caller decides whether to ask again.
func (c *Client) get(ctx context.Context, url, endpoint string, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "hotel-finder/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal(service, endpoint, 0, time.Since(start))
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	defer resp.Body.Close()
	observability.ObserveExternal(service, endpoint, resp.StatusCode, time.Since(start))

	switch resp.StatusCode {
	case http.StatusOK:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s: %w", endpoint, err)
		}
		return nil
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return &StatusError{Status: resp.StatusCode, Message: errorMessage(resp.Body)}
	}
}

// errorMessage extracts the API's {"error": "..."} text, falling back to the
// raw (truncated) body.
func errorMessage(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, 4096))
	var e struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(b, &e) == nil && e.Error != "" {
		return e.Error
	}
	return string(bytes.TrimSpace(b))
}
