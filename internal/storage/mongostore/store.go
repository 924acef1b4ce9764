// Package mongostore is the MongoDB document store. A Store is built unopened,
// opened by the process entry point and handed to the services that read it.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"hotel_finder/internal/adapters/observability"
	"hotel_finder/internal/domain"
)

const driverName = "mongo"

type Store struct {
	mu      sync.RWMutex
	client  *mongo.Client
	dbName  string
	handles map[string]*mongo.Collection
}

func New() *Store { return &Store{} }

// Open connects to uri and selects dbName. An already open connection is
// closed first and the handle cache starts empty.
func Open(ctx context.Context, uri, dbName string) (*Store, error) {
	s := New()
	if err := s.Connect(ctx, uri, dbName); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Connect(ctx context.Context, uri, dbName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		old := s.client
		s.client = nil
		if err := old.Disconnect(ctx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect before reconnect failed")
		}
	}
	s.handles = map[string]*mongo.Collection{}

	c, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return fmt.Errorf("mongo connect: %w", err)
	}
	if err := c.Ping(ctx, readpref.Primary()); err != nil {
		_ = c.Disconnect(ctx)
		return fmt.Errorf("mongo ping: %w", err)
	}
	s.client = c
	s.dbName = dbName
	return nil
}

// Handle returns the cached collection handle for name, creating it on first use.
func (s *Store) Handle(name string) (*mongo.Collection, error) {
	s.mu.RLock()
	if s.client == nil {
		s.mu.RUnlock()
		return nil, domain.ErrNotInitialized
	}
	if h, ok := s.handles[name]; ok {
		s.mu.RUnlock()
		return h, nil
	}
	s.mu.RUnlock()

	if _, err := domain.ParseCollection(name); err != nil {
		return nil, fmt.Errorf("collection %q not found: %w", name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client == nil {
		return nil, domain.ErrNotInitialized
	}
	if h, ok := s.handles[name]; ok {
		return h, nil
	}
	h := s.client.Database(s.dbName).Collection(name)
	s.handles[name] = h
	return h, nil
}

func (s *Store) Find(ctx context.Context, c domain.Collection, f domain.Filter, limit int) (out []domain.Document, err error) {
	defer observe(c, "find", time.Now(), &err)

	h, err := s.Handle(c.String())
	if err != nil {
		return nil, err
	}
	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cur, err := h.Find(ctx, toBSON(f), opts)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", c, err)
	}
	var raw []bson.M
	if err := cur.All(ctx, &raw); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c, err)
	}
	out = make([]domain.Document, 0, len(raw))
	for _, m := range raw {
		out = append(out, fromBSON(m))
	}
	return out, nil
}

func (s *Store) FindByID(ctx context.Context, c domain.Collection, id string) (d domain.Document, err error) {
	defer observe(c, "find_one", time.Now(), &err)

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidID, id)
	}
	h, err := s.Handle(c.String())
	if err != nil {
		return nil, err
	}
	var m bson.M
	if err := h.FindOne(ctx, bson.M{"_id": oid}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find %s %s: %w", c, id, err)
	}
	return fromBSON(m), nil
}

func (s *Store) Count(ctx context.Context, c domain.Collection) (n int64, err error) {
	defer observe(c, "count", time.Now(), &err)

	h, err := s.Handle(c.String())
	if err != nil {
		return 0, err
	}
	n, err = h.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", c, err)
	}
	return n, nil
}

// InsertMany assigns a fresh ObjectID to every document and stores the batch.
func (s *Store) InsertMany(ctx context.Context, c domain.Collection, docs []domain.Document) (ids []string, err error) {
	defer observe(c, "insert_many", time.Now(), &err)

	if len(docs) == 0 {
		return nil, nil
	}
	h, err := s.Handle(c.String())
	if err != nil {
		return nil, err
	}
	batch := make([]any, len(docs))
	ids = make([]string, len(docs))
	for i, d := range docs {
		oid := primitive.NewObjectID()
		m := bson.M{}
		for k, v := range d {
			m[k] = v
		}
		m["_id"] = oid
		batch[i] = m
		ids[i] = oid.Hex()
	}
	if _, err := h.InsertMany(ctx, batch); err != nil {
		return nil, fmt.Errorf("insert %s: %w", c, err)
	}
	return ids, nil
}

// Close disconnects and drops every cached handle. Closing an unopened store is a no-op.
func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handles = nil
	if s.client == nil {
		return nil
	}
	c := s.client
	s.client = nil
	return c.Disconnect(ctx)
}

func observe(c domain.Collection, op string, start time.Time, err *error) {
	observability.ObserveStore(driverName, c.String(), op, observability.Outcome(*err), time.Since(start))
}
