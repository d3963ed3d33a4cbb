package uci

import (
	"context"
	"errors"
	"sync"
)

// ErrPoolClosed is returned by Get after Close.
var ErrPoolClosed = errors.New("pool closed")

// Starter constructs a ready client for cfg.
type Starter func(ctx context.Context, cfg Config) (*Client, error)

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithStarter replaces Start as the client constructor.
func WithStarter(s Starter) PoolOption {
	return func(p *Pool) {
		p.start = s
	}
}

type poolEntry struct {
	ready  chan struct{}
	client *Client
	err    error
}

// Pool shares one client per Config.Key. Engines are started on first use
// and all of them are shut down by Close.
//
// Thread Safety:
// A Pool is safe for concurrent use. Concurrent first requests for the same
// key start a single engine; requests for other keys are not blocked by a
// start in progress.
type Pool struct {
	start Starter

	mu      sync.Mutex
	entries map[Key]*poolEntry
	closed  bool

	closeOnce sync.Once
	closeErr  error
}

// NewPool creates an empty pool.
func NewPool(opts ...PoolOption) *Pool {
	p := &Pool{
		start:   Start,
		entries: make(map[Key]*poolEntry),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Get returns the client for cfg.Key(), starting it on first use. A failed
// start is not cached, so a later Get tries again.
func (p *Pool) Get(ctx context.Context, cfg Config) (*Client, error) {
	key := cfg.Key()
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrPoolClosed
	}
	e, ok := p.entries[key]
	if !ok {
		e = &poolEntry{ready: make(chan struct{})}
		p.entries[key] = e
		p.mu.Unlock()

		e.client, e.err = p.start(ctx, cfg)
		if e.err != nil {
			p.mu.Lock()
			delete(p.entries, key)
			p.mu.Unlock()
		}
		close(e.ready)
		return e.client, e.err
	}
	p.mu.Unlock()

	select {
	case <-e.ready:
		return e.client, e.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Len returns the number of started or starting clients.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.entries)
}

// Close shuts down every client exactly once and reports their errors
// joined. Later calls return the same result.
func (p *Pool) Close() error {
	p.closeOnce.Do(func() {
		p.mu.Lock()
		p.closed = true
		entries := make([]*poolEntry, 0, len(p.entries))
		for _, e := range p.entries {
			entries = append(entries, e)
		}
		clear(p.entries)
		p.mu.Unlock()

		var errs []error
		for _, e := range entries {
			<-e.ready
			if e.client != nil {
				errs = append(errs, e.client.Close())
			}
		}
		p.closeErr = errors.Join(errs...)
	})
	return p.closeErr
}
