package app

import (
	"context"
	"errors"

	"hotel_finder/internal/domain"
)

// DefaultSearchLimit caps every search response.
const DefaultSearchLimit = 10

type QueryService struct {
	store domain.Store
	limit int
	regex bool
}

type QueryOption func(*QueryService)

// WithLimit overrides the search cap; non-positive values keep the default.
func WithLimit(n int) QueryOption {
	return func(s *QueryService) {
		if n > 0 {
			s.limit = n
		}
	}
}

// WithRegexSearch makes search text a case-insensitive pattern instead of a
// literal substring.
func WithRegexSearch(on bool) QueryOption {
	return func(s *QueryService) { s.regex = on }
}

func NewQueryService(st domain.Store, opts ...QueryOption) *QueryService {
	s := &QueryService{store: st, limit: DefaultSearchLimit}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Search returns at most limit documents of c matching raw. The result is
// never nil so it encodes as a JSON array.
func (s *QueryService) Search(ctx context.Context, c domain.Collection, raw string) ([]domain.Document, error) {
	f, err := BuildFilter(c, raw, s.regex)
	if err != nil {
		return nil, err
	}
	docs, err := s.store.Find(ctx, c, f, s.limit)
	if err != nil {
		return nil, err
	}
	if len(docs) > s.limit {
		docs = docs[:s.limit]
	}
	if docs == nil {
		docs = []domain.Document{}
	}
	return docs, nil
}

// Lookup fetches one document by id. A malformed or unknown id yields a nil
// document and no error.
func (s *QueryService) Lookup(ctx context.Context, c domain.Collection, id string) (domain.Document, error) {
	d, err := s.store.FindByID(ctx, c, id)
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidID) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}
