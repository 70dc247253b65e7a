package repositories

import (
	"context"
	"fmt"
	"sync"

	"khola-chithi/engine/internal/metrics"
	"khola-chithi/engine/internal/store"

	"github.com/google/uuid"
)

// Collection keeps one entity collection in memory with an id index and
// writes the full collection through to the document store on every
// mutation. Mutations are whole read-modify-write cycles; the RWMutex only
// guards the in-memory state against the concurrent HTTP surface.
type Collection[T any] struct {
	mu    sync.RWMutex
	store store.DocumentStore
	key   string
	items []T
	index map[string]int
	getID func(*T) string
	setID func(*T, string)
}

// NewCollection loads the collection from the store, falling back to seed
// on a missing or unparsable record.
func NewCollection[T any](
	ctx context.Context,
	s store.DocumentStore,
	key string,
	seed []T,
	getID func(*T) string,
	setID func(*T, string),
) *Collection[T] {
	c := &Collection[T]{
		store: s,
		key:   key,
		getID: getID,
		setID: setID,
	}
	c.items = store.LoadOrSeed(ctx, s, key, seed)
	c.reindex()
	return c
}

func (c *Collection[T]) reindex() {
	c.index = make(map[string]int, len(c.items))
	for i := range c.items {
		c.index[c.getID(&c.items[i])] = i
	}
}

func (c *Collection[T]) persist(ctx context.Context) error {
	if err := c.store.Save(ctx, c.key, c.items); err != nil {
		return fmt.Errorf("failed to persist collection %q: %w", c.key, err)
	}
	metrics.Default().StoreWritesTotal.WithLabelValues(c.key).Inc()
	return nil
}

// All returns a copy of the collection in insertion order.
func (c *Collection[T]) All() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Get returns the entity with the given id.
func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var zero T
	i, ok := c.index[id]
	if !ok {
		return zero, false
	}
	return c.items[i], true
}

// Filter returns all entities matching pred, in insertion order.
func (c *Collection[T]) Filter(pred func(*T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []T
	for i := range c.items {
		if pred(&c.items[i]) {
			out = append(out, c.items[i])
		}
	}
	return out
}

// Count returns the number of entities matching pred.
func (c *Collection[T]) Count(pred func(*T) bool) int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	for i := range c.items {
		if pred(&c.items[i]) {
			n++
		}
	}
	return n
}

// Add appends the entity, generating a uuid when the id is empty, and
// persists the collection.
func (c *Collection[T]) Add(ctx context.Context, item T) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.getID(&item) == "" {
		c.setID(&item, uuid.New().String())
	}
	c.items = append(c.items, item)
	c.index[c.getID(&item)] = len(c.items) - 1

	if err := c.persist(ctx); err != nil {
		return item, err
	}
	return item, nil
}

// Mutate applies fn to the entity with the given id and persists the
// collection. Returns false when the id is unknown.
func (c *Collection[T]) Mutate(ctx context.Context, id string, fn func(*T)) (T, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	i, ok := c.index[id]
	if !ok {
		return zero, false, nil
	}

	fn(&c.items[i])
	if err := c.persist(ctx); err != nil {
		return c.items[i], true, err
	}
	return c.items[i], true, nil
}

// Delete removes the entity with the given id and persists the collection.
func (c *Collection[T]) Delete(ctx context.Context, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.index[id]
	if !ok {
		return false, nil
	}

	c.items = append(c.items[:i], c.items[i+1:]...)
	c.reindex()

	if err := c.persist(ctx); err != nil {
		return true, err
	}
	return true, nil
}

// ReplaceWhere drops every entity matching drop, appends rows, and persists
// once. Used by the batch calculators for idempotent-by-replacement writes.
func (c *Collection[T]) ReplaceWhere(ctx context.Context, drop func(*T) bool, rows []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.items[:0:0]
	for i := range c.items {
		if !drop(&c.items[i]) {
			kept = append(kept, c.items[i])
		}
	}
	for i := range rows {
		if c.getID(&rows[i]) == "" {
			c.setID(&rows[i], uuid.New().String())
		}
	}
	c.items = append(kept, rows...)
	c.reindex()

	return c.persist(ctx)
}
