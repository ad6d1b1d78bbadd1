// Package cache holds the process-wide memo of calendar window queries.
// Invalidation is unconditional and last-writer-wins: there is no
// versioning, so a concurrent unrelated write can leave the memo
// transiently stale until the next invalidation.
package cache

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Invalidator is the single-method contract the sync engine depends on.
type Invalidator interface {
	Invalidate(scope string)
}

// QueryCache memoizes window query results keyed by [start, end].
type QueryCache[T any] struct {
	mu      sync.RWMutex
	entries map[string][]T
}

func New[T any]() *QueryCache[T] {
	return &QueryCache[T]{entries: make(map[string][]T)}
}

func key(start, end time.Time) string {
	return start.UTC().Format(time.RFC3339) + "/" + end.UTC().Format(time.RFC3339)
}

func (c *QueryCache[T]) Get(start, end time.Time) ([]T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	values, ok := c.entries[key(start, end)]
	return values, ok
}

func (c *QueryCache[T]) Put(start, end time.Time, values []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key(start, end)] = values
}

// Invalidate drops every memoized window. The scope is recorded for
// observability only; corrective writes can touch any window, so partial
// invalidation would risk serving deleted events.
func (c *QueryCache[T]) Invalidate(scope string) {
	c.mu.Lock()
	n := len(c.entries)
	c.entries = make(map[string][]T)
	c.mu.Unlock()

	logrus.WithFields(logrus.Fields{"scope": scope, "dropped": n}).Debug("Read cache invalidated")
}

// Len reports the number of memoized windows.
func (c *QueryCache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
