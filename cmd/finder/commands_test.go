package main

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"hotel_finder/internal/domain"
)

type stubAPI struct {
	mu      sync.Mutex
	queries []string
}

func (s *stubAPI) record(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries = append(s.queries, q)
}

func (s *stubAPI) SearchHotels(ctx context.Context, q string) ([]domain.Hotel, error) {
	s.record(q)
	return []domain.Hotel{{ID: "h1", HotelName: "Grand Plaza", City: "Paris", Country: "France"}}, nil
}

func (s *stubAPI) SearchCities(ctx context.Context, q string) ([]domain.City, error) {
	return []domain.City{{ID: "c1", Name: "Paris"}}, nil
}

func (s *stubAPI) SearchCountries(ctx context.Context, q string) ([]domain.Country, error) {
	return nil, nil
}

func TestInteractive_BurstSearchesOnce(t *testing.T) {
	api := &stubAPI{}
	in := strings.NewReader("p\npa\npar\n")
	var out bytes.Buffer

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := interactive(ctx, api, in, &out, 200*time.Millisecond); err != nil {
		t.Fatalf("interactive: %v", err)
	}

	api.mu.Lock()
	defer api.mu.Unlock()
	if len(api.queries) != 1 || api.queries[0] != "par" {
		t.Fatalf("expected a single search for %q, got %v", "par", api.queries)
	}
	if !strings.Contains(out.String(), "Grand Plaza") || !strings.Contains(out.String(), "No countries matched") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}

// endless yields "x" lines forever.
type endless struct{}

func (endless) Read(p []byte) (int, error) {
	for i := range p {
		if i%2 == 0 {
			p[i] = 'x'
		} else {
			p[i] = '\n'
		}
	}
	return len(p) - len(p)%2, nil
}

func TestScanLines_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	lines, _ := scanLines(ctx, endless{})
	if l := <-lines; l != "x" {
		t.Fatalf("unexpected line %q", l)
	}
	cancel()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-lines:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("reader goroutine kept running after cancel")
		}
	}
}

func TestInteractive_ReturnsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- interactive(ctx, &stubAPI{}, endless{}, io.Discard, time.Hour) }()

	time.Sleep(20 * time.Millisecond)
	cancel()
	select {
	case err := <-errc:
		if err != nil {
			t.Fatalf("interactive: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("interactive did not return after cancel")
	}
}
