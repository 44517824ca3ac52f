package session

import (
	"sync"
	"time"

	"github.com/travelapp/flight-booking-client/internal/app/workflow"
)

// Registry keys one workflow controller per browser session. Idle sessions
// are evicted opportunistically on access; nothing is persisted.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry
	factory func() *workflow.Controller
	idleTTL time.Duration
	now     func() time.Time
}

type entry struct {
	controller *workflow.Controller
	lastSeen   time.Time
}

func NewRegistry(factory func() *workflow.Controller, idleTTL time.Duration) *Registry {
	return &Registry{
		entries: make(map[string]*entry),
		factory: factory,
		idleTTL: idleTTL,
		now:     time.Now,
	}
}

// Controller returns the workflow for the session id, creating it on first
// access.
func (r *Registry) Controller(id string) *workflow.Controller {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.evictLocked(now)

	e, ok := r.entries[id]
	if !ok {
		e = &entry{controller: r.factory()}
		r.entries[id] = e
	}

	e.lastSeen = now

	return e.controller
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.entries)
}

func (r *Registry) evictLocked(now time.Time) {
	if r.idleTTL <= 0 {
		return
	}

	for id, e := range r.entries {
		if now.Sub(e.lastSeen) > r.idleTTL {
			delete(r.entries, id)
		}
	}
}
