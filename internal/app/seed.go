package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hotel_finder/internal/domain"
)

type SeedService struct {
	store domain.Store
}

func NewSeedService(st domain.Store) *SeedService {
	return &SeedService{store: st}
}

// SeedCollection loads docs into c. A collection that already holds documents
// is left alone unless force is set, so restarts do not duplicate the seed.
// It returns the number of inserted documents.
func (s *SeedService) SeedCollection(ctx context.Context, c domain.Collection, docs []domain.Document, force bool) (int, error) {
	if len(docs) == 0 {
		return 0, nil
	}
	if !force {
		n, err := s.store.Count(ctx, c)
		if err != nil {
			return 0, fmt.Errorf("count %s: %w", c, err)
		}
		if n > 0 {
			log.Info().Str("collection", c.String()).Int64("existing", n).Msg("seed skipped, collection not empty")
			return 0, nil
		}
	}

	// copy so the store can assign identifiers without touching the caller's slice
	batch := make([]domain.Document, len(docs))
	for i, d := range docs {
		cp := make(domain.Document, len(d))
		for k, v := range d {
			cp[k] = v
		}
		delete(cp, domain.IDField)
		batch[i] = cp
	}

	ids, err := s.store.InsertMany(ctx, c, batch)
	if err != nil {
		return 0, fmt.Errorf("insert %s: %w", c, err)
	}
	return len(ids), nil
}

// SeedAll seeds every collection in data with at most workers loads in flight.
// All collections are attempted; the returned error joins every failure.
func (s *SeedService) SeedAll(ctx context.Context, data map[domain.Collection][]domain.Document, workers int, force bool) error {
	if workers <= 0 {
		workers = 1
	}
	sem := semaphore.NewWeighted(int64(workers))
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	for _, c := range domain.Collections() {
		docs, ok := data[c]
		if !ok {
			continue
		}

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			mu.Lock()
			errs = append(errs, fmt.Errorf("seed %s: %w", c, err))
			mu.Unlock()
			break
		}

		wg.Add(1)
		go func(c domain.Collection, docs []domain.Document) {
			defer wg.Done()
			defer sem.Release(1)

			n, err := s.SeedCollection(ctx, c, docs, force)
			if err != nil {
				log.Warn().Str("collection", c.String()).Err(err).Msg("seed failed")
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
				return
			}
			log.Info().Str("collection", c.String()).Int("inserted", n).Msg("seed ok")
		}(c, docs)
	}

	wg.Wait()
	return errors.Join(errs...)
}
