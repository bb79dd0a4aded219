// Package stream provides the small reactive primitives the data layer
// is built on: a multi-subscriber broadcaster for continuous sources, a
// single-shot source, and latest-value combination of two sources.
package stream

import (
	"context"
	"sync"
)

// Broadcaster fans published values out to any number of subscribers.
// Each subscriber receives values in publish order; publishing never
// blocks on slow consumers.
type Broadcaster[T any] struct {
	mu   sync.Mutex
	subs map[int]*subscriber[T]
	next int
}

type subscriber[T any] struct {
	mu    sync.Mutex
	queue []T
	wake  chan struct{}
	out   chan T
}

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster[T any]() *Broadcaster[T] {
	return &Broadcaster[T]{subs: make(map[int]*subscriber[T])}
}

// Subscribe registers a subscriber and returns its channel. Seed values
// are delivered first, before anything published afterwards. The
// channel is closed and the subscriber unregistered when ctx is
// cancelled.
func (b *Broadcaster[T]) Subscribe(ctx context.Context, seed ...T) <-chan T {
	sub := &subscriber[T]{
		queue: append([]T(nil), seed...),
		wake:  make(chan struct{}, 1),
		out:   make(chan T),
	}

	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = sub
	b.mu.Unlock()

	go func() {
		defer func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
			close(sub.out)
		}()

		for {
			sub.mu.Lock()
			var (
				v    T
				have bool
			)
			if len(sub.queue) > 0 {
				v, have = sub.queue[0], true
				sub.queue = sub.queue[1:]
			}
			sub.mu.Unlock()

			if !have {
				select {
				case <-ctx.Done():
					return
				case <-sub.wake:
				}
				continue
			}

			select {
			case <-ctx.Done():
				return
			case sub.out <- v:
			}
		}
	}()

	return sub.out
}

// Publish enqueues v for every active subscriber and returns without
// waiting for delivery.
func (b *Broadcaster[T]) Publish(v T) {
	b.mu.Lock()
	subs := make([]*subscriber[T], 0, len(b.subs))
	for _, s := range b.subs {
		subs = append(subs, s)
	}
	b.mu.Unlock()

	for _, s := range subs {
		s.mu.Lock()
		s.queue = append(s.queue, v)
		s.mu.Unlock()
		select {
		case s.wake <- struct{}{}:
		default:
		}
	}
}

// Subscribers returns the number of active subscribers.
func (b *Broadcaster[T]) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Once returns a single-shot source: it emits v exactly once and then
// completes. Used for data that cannot change for the life of the
// process, like the airport catalog.
func Once[T any](v T) <-chan T {
	ch := make(chan T, 1)
	ch <- v
	close(ch)
	return ch
}

// CombineLatest joins two sources with latest-value semantics: once
// both have emitted, a combined value is produced on every emission of
// either, using the most recent value of the other. The result
// completes when both upstreams complete or ctx is cancelled.
func CombineLatest[A, B, R any](ctx context.Context, a <-chan A, b <-chan B, combine func(A, B) R) <-chan R {
	out := make(chan R)

	go func() {
		defer close(out)

		var (
			latestA      A
			latestB      B
			haveA, haveB bool
		)

		emit := func() bool {
			if !haveA || !haveB {
				return true
			}
			select {
			case <-ctx.Done():
				return false
			case out <- combine(latestA, latestB):
				return true
			}
		}

		for a != nil || b != nil {
			select {
			case <-ctx.Done():
				return
			case v, ok := <-a:
				if !ok {
					a = nil
					continue
				}
				latestA, haveA = v, true
				if !emit() {
					return
				}
			case v, ok := <-b:
				if !ok {
					b = nil
					continue
				}
				latestB, haveB = v, true
				if !emit() {
					return
				}
			}
		}
	}()

	return out
}
