package client_test

import (
	"errors"
	"strings"
	"testing"

	"hotel_finder/internal/client"
	"hotel_finder/internal/domain"
)

func TestRenderResults(t *testing.T) {
	out := client.RenderResults(client.Snapshot{
		Query:     "par",
		Hotels:    client.Section[domain.Hotel]{State: client.Ready, Items: []domain.Hotel{{ID: "h1", HotelName: "Grand Plaza", City: "Paris", Country: "France"}}},
		Cities:    client.Section[domain.City]{State: client.Failed, Err: errors.New("boom")},
		Countries: client.Section[domain.Country]{State: client.Ready},
	})
	for _, want := range []string{"Hotels", "Grand Plaza", "/hotels/h1", "Countries", "No countries matched", "Cities", "An error occurred while fetching data"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "boom") {
		t.Fatalf("raw error leaked into view")
	}

	if client.RenderResults(client.Snapshot{}) != "" {
		t.Fatalf("empty query should render nothing")
	}
}

func TestRenderDetail(t *testing.T) {
	out := client.RenderDetail(domain.Countries, client.DetailState[domain.Country]{
		ID: "c1", Status: client.DetailLoaded, Value: &domain.Country{Country: "France", CountryISOCode: "FR"},
	}, client.CountryFields)
	if !strings.Contains(out, "Country c1") || !strings.Contains(out, "France") || !strings.Contains(out, "FR") {
		t.Fatalf("unexpected detail view:\n%s", out)
	}

	out = client.RenderDetail(domain.Cities, client.DetailState[domain.City]{ID: "x", Status: client.DetailNotFound}, client.CityFields)
	if !strings.Contains(out, "No city with this id") {
		t.Fatalf("unexpected not-found view:\n%s", out)
	}
}
