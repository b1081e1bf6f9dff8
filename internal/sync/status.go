// ABOUTME: Sync status type and the observer registry broadcasting it.
// ABOUTME: Decouples sync progress from any particular UI element.
package sync

import (
	"sync"
	"time"
)

// Status is a snapshot of sync progress.
type Status struct {
	LastSync       time.Time // zero if never synced
	IsSyncing      bool
	PendingChanges int
}

// Publisher broadcasts status snapshots to any number of subscribers.
// It is a constructed value owned by whoever owns the engine; there is
// no package-level instance.
type Publisher struct {
	mu   sync.Mutex
	next int
	subs map[int]func(Status)
}

// NewPublisher creates an empty observer registry.
func NewPublisher() *Publisher {
	return &Publisher{subs: make(map[int]func(Status))}
}

// Subscribe registers a callback invoked on every state transition and
// returns its unsubscribe function. Unsubscribing twice is a no-op.
func (p *Publisher) Subscribe(cb func(Status)) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.next
	p.next++
	p.subs[id] = cb
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.subs, id)
	}
}

// Notify delivers a snapshot to all current subscribers. Callbacks run
// outside the registry lock so a subscriber may unsubscribe from within
// its own callback.
func (p *Publisher) Notify(s Status) {
	p.mu.Lock()
	cbs := make([]func(Status), 0, len(p.subs))
	for _, cb := range p.subs {
		cbs = append(cbs, cb)
	}
	p.mu.Unlock()

	for _, cb := range cbs {
		cb(s)
	}
}
