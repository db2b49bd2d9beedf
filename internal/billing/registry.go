package billing

import (
	"sync"
	"time"

	"checkout-be/internal/metrics"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Registry keeps the mounted sections, one per checkout. Sections that are
// not touched for ttl are dropped, as are the least recently used ones
// beyond capacity.
type Registry struct {
	mu       sync.Mutex
	sections *expirable.LRU[uuid.UUID, *Section]
}

func NewRegistry(capacity int, ttl time.Duration) *Registry {
	onEvict := func(_ uuid.UUID, _ *Section) {
		metrics.SectionUnmounted()
	}
	return &Registry{
		sections: expirable.NewLRU[uuid.UUID, *Section](capacity, onEvict, ttl),
	}
}

// Mount returns the section mounted for checkoutID, or builds and mounts a
// new one. A section mounted for another identity is replaced. build runs
// without the registry lock; when another Mount for the same checkout and
// identity finishes first, its section is kept and the built one dropped.
func (r *Registry) Mount(
	checkoutID uuid.UUID,
	identity *Identity,
	build func() (*Section, error),
) (*Section, error) {

	if s, ok := r.mounted(checkoutID, identity); ok {
		return s, nil
	}

	built, err := build()
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sections.Get(checkoutID); ok && sameIdentity(s.Identity(), identity) {
		return s, nil
	}

	existed := r.sections.Contains(checkoutID)
	r.sections.Add(checkoutID, built)
	if !existed {
		metrics.SectionMounted()
	}
	return built, nil
}

func (r *Registry) mounted(checkoutID uuid.UUID, identity *Identity) (*Section, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sections.Get(checkoutID)
	if !ok || !sameIdentity(s.Identity(), identity) {
		return nil, false
	}
	return s, true
}

func (r *Registry) Get(checkoutID uuid.UUID) (*Section, bool) {
	return r.sections.Get(checkoutID)
}

// Unmount discards the section of checkoutID together with its state.
func (r *Registry) Unmount(checkoutID uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.sections.Remove(checkoutID)
}

func (r *Registry) Len() int {
	return r.sections.Len()
}

func sameIdentity(a, b *Identity) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.UserID == b.UserID
}
