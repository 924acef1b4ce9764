package domain

import "context"

// Store is the document store the API reads from.
type Store interface {
	// Read paths
	Find(ctx context.Context, c Collection, f Filter, limit int) ([]Document, error)
	FindByID(ctx context.Context, c Collection, id string) (Document, error)
	Count(ctx context.Context, c Collection) (int64, error)

	// Seed path
	InsertMany(ctx context.Context, c Collection, docs []Document) ([]string, error)

	Close(ctx context.Context) error
}
