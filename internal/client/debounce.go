package client

import (
	"sync"
	"time"
)

// Debouncer commits a value once it has been left alone for the delay.
// Every Set restarts the wait, so a burst of Sets commits only the last value.
type Debouncer[T any] struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	gen     uint64
	out     chan T
	stopped bool
}

func NewDebouncer[T any](delay time.Duration) *Debouncer[T] {
	return &Debouncer[T]{delay: delay, out: make(chan T, 1)}
}

func (d *Debouncer[T]) Set(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() { d.commit(gen, v) })
}

// commit drops values whose timer was superseded after it had already fired.
func (d *Debouncer[T]) commit(gen uint64, v T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped || gen != d.gen {
		return
	}
	// a reader that fell behind only ever sees the newest committed value
	select {
	case <-d.out:
	default:
	}
	d.out <- v
}

// C delivers committed values.
func (d *Debouncer[T]) C() <-chan T { return d.out }

// Stop cancels any pending commit. Later Sets are ignored.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
}
