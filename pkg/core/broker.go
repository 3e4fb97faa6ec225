package core

import (
	"context"
	"sync"
	"time"
)

// Handler reacts to a published event.
type Handler func(ctx context.Context, e Event)

// Broker fans events out to explicit subscribers.
// Handlers run synchronously, in subscription order, on the publisher's
// goroutine. Publishers must not hold their own locks while publishing.
type Broker struct {
	mu     sync.RWMutex
	nextID int
	subs   []subscription
}

type subscription struct {
	id      int
	handler Handler
}

// NewBroker creates an empty Broker.
func NewBroker() *Broker {
	return &Broker{}
}

// Subscribe registers h and returns a function that removes it.
func (b *Broker) Subscribe(h Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, handler: h})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers e to every current subscriber.
func (b *Broker) Publish(ctx context.Context, e Event) {
	if e.Timestamp == 0 {
		e.Timestamp = time.Now().Unix()
	}

	b.mu.RLock()
	handlers := make([]Handler, len(b.subs))
	for i, s := range b.subs {
		handlers[i] = s.handler
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(ctx, e)
	}
}

// Len returns the number of subscribers.
func (b *Broker) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
