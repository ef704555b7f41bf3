package cache

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache is a size-bounded, concurrency-safe LRU keyed by entity id.
// A zero size yields a disabled cache where every lookup misses.
type Cache[V any] struct {
	lru *lru.Cache[string, V]
}

func New[V any](size int) (*Cache[V], error) {
	if size <= 0 {
		return &Cache[V]{}, nil
	}

	l, err := lru.New[string, V](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create lru cache: %w", err)
	}
	return &Cache[V]{lru: l}, nil
}

func (c *Cache[V]) Get(key string) (V, bool) {
	if c.lru == nil {
		var zero V
		return zero, false
	}
	return c.lru.Get(key)
}

func (c *Cache[V]) Add(key string, value V) {
	if c.lru == nil {
		return
	}
	c.lru.Add(key, value)
}

func (c *Cache[V]) Remove(key string) {
	if c.lru == nil {
		return
	}
	c.lru.Remove(key)
}

func (c *Cache[V]) Len() int {
	if c.lru == nil {
		return 0
	}
	return c.lru.Len()
}

func (c *Cache[V]) Purge() {
	if c.lru == nil {
		return
	}
	c.lru.Purge()
}
