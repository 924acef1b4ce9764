package client

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"hotel_finder/internal/domain"
)

// Fetcher runs the three searches; finderapi.Client implements it.
type Fetcher interface {
	SearchHotels(ctx context.Context, q string) ([]domain.Hotel, error)
	SearchCities(ctx context.Context, q string) ([]domain.City, error)
	SearchCountries(ctx context.Context, q string) ([]domain.Country, error)
}

type SectionState int

const (
	Idle SectionState = iota
	Loading
	Ready
	Failed
)

func (s SectionState) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return "idle"
}

// Section is one independently loaded result list.
type Section[T any] struct {
	State SectionState
	Items []T
	Err   error
}

// Snapshot is the full search view for one committed query.
type Snapshot struct {
	Query     string
	Token     uint64
	Hotels    Section[domain.Hotel]
	Cities    Section[domain.City]
	Countries Section[domain.Country]
}

// Settled reports whether no section is still loading.
func (s Snapshot) Settled() bool {
	return s.Hotels.State != Loading && s.Cities.State != Loading && s.Countries.State != Loading
}

// Searcher fans a committed query out to the three collections. Each query
// takes a new token; responses carrying an older token are dropped and the
// older query's requests are cancelled.
type Searcher struct {
	f       Fetcher
	publish func(Snapshot)

	mu     sync.Mutex
	token  uint64
	snap   Snapshot
	cancel context.CancelFunc
}

// NewSearcher builds a Searcher. publish, when set, receives every snapshot
// change in order; it runs under the Searcher's lock and must not call back in.
func NewSearcher(f Fetcher, publish func(Snapshot)) *Searcher {
	if publish == nil {
		publish = func(Snapshot) {}
	}
	return &Searcher{f: f, publish: publish}
}

// Snapshot returns the current view.
func (s *Searcher) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// Query runs q and blocks until its three requests finish. The returned bool
// is false when a newer query superseded q while it ran; the snapshot is then
// the newer query's view.
func (s *Searcher) Query(ctx context.Context, q string) (Snapshot, bool) {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.token++
	tok := s.token
	if q == "" {
		s.snap = Snapshot{Token: tok}
		s.publish(s.snap)
		s.mu.Unlock()
		return s.snap, true
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.snap = Snapshot{
		Query:     q,
		Token:     tok,
		Hotels:    Section[domain.Hotel]{State: Loading},
		Cities:    Section[domain.City]{State: Loading},
		Countries: Section[domain.Country]{State: Loading},
	}
	s.publish(s.snap)
	s.mu.Unlock()

	var g errgroup.Group
	g.Go(func() error {
		items, err := s.f.SearchHotels(ctx, q)
		s.apply(tok, func(sn *Snapshot) { sn.Hotels = settle(items, err) })
		return nil
	})
	g.Go(func() error {
		items, err := s.f.SearchCities(ctx, q)
		s.apply(tok, func(sn *Snapshot) { sn.Cities = settle(items, err) })
		return nil
	})
	g.Go(func() error {
		items, err := s.f.SearchCountries(ctx, q)
		s.apply(tok, func(sn *Snapshot) { sn.Countries = settle(items, err) })
		return nil
	})
	_ = g.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == tok {
		s.cancel = nil
		cancel()
		return s.snap, true
	}
	cancel()
	return s.snap, false
}

// Run issues a query for every committed value until ctx ends. A new value
// supersedes the one in flight.
func (s *Searcher) Run(ctx context.Context, committed <-chan string) {
	var wg sync.WaitGroup
	defer wg.Wait()
	for {
		select {
		case <-ctx.Done():
			return
		case q, ok := <-committed:
			if !ok {
				return
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				s.Query(ctx, q)
			}()
		}
	}
}

func (s *Searcher) apply(tok uint64, update func(*Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token != tok {
		return
	}
	update(&s.snap)
	s.publish(s.snap)
}

func settle[T any](items []T, err error) Section[T] {
	if err != nil {
		return Section[T]{State: Failed, Err: err}
	}
	return Section[T]{State: Ready, Items: items}
}
