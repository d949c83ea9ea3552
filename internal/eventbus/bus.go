// Package eventbus is a small typed fan-out used to hand engine events to
// observers that run outside the scheduling call path.
package eventbus

import (
	"sync"
	"sync/atomic"
)

const defaultBuffer = 16

// Bus delivers values of type T to every subscriber without blocking the
// publisher. A subscriber whose buffer is full misses the value; the miss is
// counted in Dropped.
type Bus[T any] struct {
	mu      sync.RWMutex
	subs    []chan T
	buffer  int
	closed  bool
	dropped atomic.Uint64
}

// New creates a bus whose subscriber channels hold buffer values.
// A non-positive buffer selects the default.
func New[T any](buffer int) *Bus[T] {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Bus[T]{buffer: buffer}
}

// Publish sends v to all subscribers.
func (b *Bus[T]) Publish(v T) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}
	for _, ch := range b.subs {
		select {
		case ch <- v:
		default:
			b.dropped.Add(1)
		}
	}
}

// Subscribe registers a subscriber. The channel is closed by Unsubscribe
// or Close.
func (b *Bus[T]) Subscribe() <-chan T {
	ch := make(chan T, b.buffer)
	b.mu.Lock()
	if b.closed {
		close(ch)
	} else {
		b.subs = append(b.subs, ch)
	}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes the subscriber and closes its channel.
func (b *Bus[T]) Unsubscribe(sub <-chan T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, ch := range b.subs {
		if ch == sub {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			close(ch)
			return
		}
	}
}

// Subscribers returns the number of live subscriptions.
func (b *Bus[T]) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Dropped returns how many deliveries were skipped on full buffers.
func (b *Bus[T]) Dropped() uint64 { return b.dropped.Load() }

// Close closes every subscriber channel. Publishing after Close is a no-op.
func (b *Bus[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for _, ch := range b.subs {
		close(ch)
	}
	b.subs = nil
}
