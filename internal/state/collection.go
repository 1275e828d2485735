package state

import (
	"sync"

	"github.com/kdsprimark-ship-it/shipdesk/internal/domain"
)

// Collection is one ordered in-memory entity collection mirroring a remote
// one. All collections of a Store share a single lock and generation counter
// so that a wholesale refresh replacement can be checked against concurrent
// local mutations across every kind at once.
type Collection[T domain.Entity[T]] struct {
	mu      *sync.RWMutex
	gen     *uint64
	kind    domain.Kind
	prepend bool
	items   []T
}

func newCollection[T domain.Entity[T]](mu *sync.RWMutex, gen *uint64, kind domain.Kind, prepend bool) *Collection[T] {
	return &Collection[T]{mu: mu, gen: gen, kind: kind, prepend: prepend}
}

// Kind returns the entity kind this collection holds.
func (c *Collection[T]) Kind() domain.Kind { return c.kind }

// Items returns a copy of the collection in display order.
func (c *Collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]T(nil), c.items...)
}

// Len returns the number of entities.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Get returns the entity with the given id.
func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, item := range c.items {
		if item.EntityID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Insert adds item per the collection's ordering convention: newest-first
// logs prepend, registries append.
func (c *Collection[T]) Insert(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.prepend {
		c.items = append([]T{item}, c.items...)
	} else {
		c.items = append(c.items, item)
	}
	*c.gen++
}

// ReplaceByID swaps the entity with the given id for item, keeping its
// position. Returns false when the id is absent.
func (c *Collection[T]) ReplaceByID(id string, item T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].EntityID() == id {
			c.items[i] = item
			*c.gen++
			return true
		}
	}
	return false
}

// RemoveByID deletes the entity with the given id. Returns false when absent.
func (c *Collection[T]) RemoveByID(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].EntityID() == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			*c.gen++
			return true
		}
	}
	return false
}

// Replace swaps the whole collection for items. Used for rollback restores
// and backup imports; counts as a local mutation.
func (c *Collection[T]) Replace(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append([]T(nil), items...)
	*c.gen++
}

// set is the refresh path: replace without bumping the generation. Caller
// holds the store lock.
func (c *Collection[T]) set(items []T) {
	c.items = append([]T(nil), items...)
}

// snapshot copies the items without locking. Caller holds the store lock.
func (c *Collection[T]) snapshot() []T {
	return append([]T(nil), c.items...)
}
