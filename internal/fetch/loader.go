// Package fetch provides the one reusable "cancel the previous fetch when
// a new one starts" lifecycle that every list screen shares, instead of
// each screen re-implementing it. It collaborates with the session core
// but is not part of it.
package fetch

import (
	"context"
	"sync"
)

type Loader struct {
	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

// Do runs fn with a context that is cancelled as soon as a newer Do (or
// Stop) arrives, so a superseded fetch cannot commit stale results.
func (l *Loader) Do(parent context.Context, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithCancel(parent)

	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	l.gen++
	mine := l.gen
	l.cancel = cancel
	l.mu.Unlock()

	defer func() {
		cancel()
		l.mu.Lock()
		// A newer Do may own the slot by now; only release our own.
		if l.gen == mine {
			l.cancel = nil
		}
		l.mu.Unlock()
	}()

	return fn(ctx)
}

// Stop cancels whatever fetch is in flight. Safe to call at any time.
func (l *Loader) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}
