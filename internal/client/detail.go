package client

import (
	"context"
	"errors"
	"sync"
)

type DetailStatus int

const (
	DetailLoading DetailStatus = iota
	DetailLoaded
	DetailNotFound
	DetailFailed
)

func (s DetailStatus) String() string {
	switch s {
	case DetailLoaded:
		return "loaded"
	case DetailNotFound:
		return "not found"
	case DetailFailed:
		return "failed"
	}
	return "loading"
}

// Loader fetches one entity; nil with no error means the API answered null.
type Loader[T any] func(ctx context.Context, id string) (*T, error)

type DetailState[T any] struct {
	ID     string
	Status DetailStatus
	Value  *T
	Err    error
}

// ErrPageClosed is reported by Wait when the page closed before its fetch ended.
var ErrPageClosed = errors.New("detail page closed")

// DetailPage loads one entity once. Closing the page cancels the fetch and
// freezes its state.
type DetailPage[T any] struct {
	id   string
	load Loader[T]

	once    sync.Once
	mu      sync.Mutex
	state   DetailState[T]
	settled bool
	closed  bool
	cancel  context.CancelFunc
	done    chan struct{}
}

func NewDetailPage[T any](id string, load Loader[T]) *DetailPage[T] {
	return &DetailPage[T]{
		id:    id,
		load:  load,
		state: DetailState[T]{ID: id, Status: DetailLoading},
		done:  make(chan struct{}),
	}
}

// Open starts the fetch. Only the first call does anything.
func (p *DetailPage[T]) Open(ctx context.Context) {
	p.once.Do(func() {
		p.mu.Lock()
		if p.closed {
			p.mu.Unlock()
			close(p.done)
			return
		}
		ctx, cancel := context.WithCancel(ctx)
		p.cancel = cancel
		p.mu.Unlock()

		go func() {
			defer close(p.done)
			defer cancel()
			v, err := p.load(ctx, p.id)

			p.mu.Lock()
			defer p.mu.Unlock()
			if p.closed {
				return
			}
			p.settled = true
			switch {
			case err != nil:
				p.state = DetailState[T]{ID: p.id, Status: DetailFailed, Err: err}
			case v == nil:
				p.state = DetailState[T]{ID: p.id, Status: DetailNotFound}
			default:
				p.state = DetailState[T]{ID: p.id, Status: DetailLoaded, Value: v}
			}
		}()
	})
}

func (p *DetailPage[T]) State() DetailState[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Wait blocks until the fetch settles, the page closes or ctx ends.
func (p *DetailPage[T]) Wait(ctx context.Context) (DetailState[T], error) {
	select {
	case <-p.done:
	case <-ctx.Done():
		return p.State(), ctx.Err()
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed && !p.settled {
		return p.state, ErrPageClosed
	}
	return p.state, nil
}

func (p *DetailPage[T]) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	if p.cancel != nil {
		p.cancel()
	}
}
