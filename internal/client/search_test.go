package client_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"hotel_finder/internal/client"
	"hotel_finder/internal/domain"
)

// ---- fakes ----

type fakeFetcher struct {
	calls atomic.Int32
	// block, when set, holds requests for that query until ctx ends
	block   string
	started chan string
	hotErr  error
}

func (f *fakeFetcher) wait(ctx context.Context, q string) error {
	f.calls.Add(1)
	if f.started != nil {
		f.started <- q
	}
	if q == f.block {
		<-ctx.Done()
		return ctx.Err()
	}
	return nil
}

func (f *fakeFetcher) SearchHotels(ctx context.Context, q string) ([]domain.Hotel, error) {
	if err := f.wait(ctx, q); err != nil {
		return nil, err
	}
	if f.hotErr != nil {
		return nil, f.hotErr
	}
	return []domain.Hotel{{ID: "h1", HotelName: "Hotel " + q}}, nil
}

func (f *fakeFetcher) SearchCities(ctx context.Context, q string) ([]domain.City, error) {
	if err := f.wait(ctx, q); err != nil {
		return nil, err
	}
	return []domain.City{{ID: "c1", Name: "City " + q}}, nil
}

func (f *fakeFetcher) SearchCountries(ctx context.Context, q string) ([]domain.Country, error) {
	if err := f.wait(ctx, q); err != nil {
		return nil, err
	}
	return nil, nil
}

type recorder struct {
	mu    sync.Mutex
	snaps []client.Snapshot
}

func (r *recorder) publish(s client.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snaps = append(r.snaps, s)
}

func (r *recorder) all() []client.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]client.Snapshot(nil), r.snaps...)
}

// ---- tests ----

func TestQuery_ThreeSections(t *testing.T) {
	f := &fakeFetcher{}
	rec := &recorder{}
	s := client.NewSearcher(f, rec.publish)

	snap, fresh := s.Query(context.Background(), "par")
	if !fresh {
		t.Fatalf("expected fresh result")
	}
	if f.calls.Load() != 3 {
		t.Fatalf("expected 3 requests, got %d", f.calls.Load())
	}
	if !snap.Settled() || snap.Hotels.State != client.Ready || snap.Hotels.Items[0].HotelName != "Hotel par" {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if snap.Countries.State != client.Ready || len(snap.Countries.Items) != 0 {
		t.Fatalf("unexpected countries %+v", snap.Countries)
	}

	snaps := rec.all()
	if len(snaps) != 4 {
		t.Fatalf("expected loading + 3 section updates, got %d", len(snaps))
	}
	if snaps[0].Hotels.State != client.Loading || snaps[0].Cities.State != client.Loading {
		t.Fatalf("first snapshot should be loading: %+v", snaps[0])
	}
}

func TestQuery_EmptyClearsWithoutRequests(t *testing.T) {
	f := &fakeFetcher{}
	s := client.NewSearcher(f, nil)

	s.Query(context.Background(), "par")
	snap, fresh := s.Query(context.Background(), "")
	if !fresh || snap.Query != "" || snap.Hotels.Items != nil || snap.Hotels.State != client.Idle {
		t.Fatalf("expected cleared snapshot, got %+v", snap)
	}
	if f.calls.Load() != 3 {
		t.Fatalf("empty query must not fetch, calls=%d", f.calls.Load())
	}
}

func TestQuery_SectionFailureIsIsolated(t *testing.T) {
	f := &fakeFetcher{hotErr: errors.New("503")}
	s := client.NewSearcher(f, nil)

	snap, _ := s.Query(context.Background(), "lon")
	if snap.Hotels.State != client.Failed || snap.Hotels.Err == nil {
		t.Fatalf("expected failed hotels, got %+v", snap.Hotels)
	}
	if snap.Cities.State != client.Ready || snap.Cities.Items[0].Name != "City lon" {
		t.Fatalf("cities should still load, got %+v", snap.Cities)
	}
}

func TestQuery_StaleResponsesDiscarded(t *testing.T) {
	f := &fakeFetcher{block: "pa", started: make(chan string, 16)}
	rec := &recorder{}
	s := client.NewSearcher(f, rec.publish)

	type result struct {
		snap  client.Snapshot
		fresh bool
	}
	first := make(chan result, 1)
	go func() {
		sn, ok := s.Query(context.Background(), "pa")
		first <- result{sn, ok}
	}()
	for i := 0; i < 3; i++ {
		select {
		case <-f.started:
		case <-time.After(time.Second):
			t.Fatalf("first query never started")
		}
	}

	snap, fresh := s.Query(context.Background(), "par")
	if !fresh || snap.Query != "par" {
		t.Fatalf("second query should win, got %+v fresh=%v", snap, fresh)
	}

	select {
	case r := <-first:
		if r.fresh {
			t.Fatalf("superseded query reported fresh")
		}
		if r.snap.Query != "par" {
			t.Fatalf("superseded query should see newer view, got %q", r.snap.Query)
		}
	case <-time.After(time.Second):
		t.Fatalf("superseded query was not cancelled")
	}

	// once "par" was published nothing from "pa" may follow
	seenPar := false
	for _, sn := range rec.all() {
		if sn.Query == "par" {
			seenPar = true
		}
		if seenPar && sn.Query == "pa" {
			t.Fatalf("stale snapshot published after newer query")
		}
		if sn.Query == "pa" && sn.Hotels.State == client.Failed {
			t.Fatalf("cancelled request leaked into view: %+v", sn)
		}
	}
	if got := s.Snapshot(); got.Query != "par" || !got.Settled() {
		t.Fatalf("unexpected final snapshot %+v", got)
	}
}

func TestRun_DebouncedTyping(t *testing.T) {
	f := &fakeFetcher{}
	s := client.NewSearcher(f, nil)
	d := client.NewDebouncer[string](40 * time.Millisecond)
	defer d.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx, d.C())
		close(done)
	}()

	for _, v := range []string{"p", "pa", "par"} {
		d.Set(v)
		time.Sleep(5 * time.Millisecond)
	}

	deadline := time.After(2 * time.Second)
	for {
		if snap := s.Snapshot(); snap.Query == "par" && snap.Settled() {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("debounced query never settled: %+v", s.Snapshot())
		case <-time.After(10 * time.Millisecond):
		}
	}
	cancel()
	<-done

	if f.calls.Load() != 3 {
		t.Fatalf("expected exactly one fan-out (3 requests), got %d", f.calls.Load())
	}
	if !strings.HasPrefix(s.Snapshot().Hotels.Items[0].HotelName, "Hotel par") {
		t.Fatalf("unexpected hotels %+v", s.Snapshot().Hotels)
	}
}
