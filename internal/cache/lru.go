// Package cache provides a small size-bounded LRU used to front decoded
// storage partitions. There is exactly one writer in the process, so
// entries never expire on their own; the owner invalidates on every write.
package cache

import (
	"container/list"
	"sync"
)

type LRU[T any] struct {
	mu      sync.Mutex
	maxSize int
	items   map[string]*list.Element
	order   *list.List
}

type entry[T any] struct {
	key  string
	data T
}

func NewLRU[T any](maxSize int) *LRU[T] {
	if maxSize < 1 {
		maxSize = 1
	}
	return &LRU[T]{
		maxSize: maxSize,
		items:   make(map[string]*list.Element),
		order:   list.New(),
	}
}

func (c *LRU[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	elem, ok := c.items[key]
	if !ok {
		return zero, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*entry[T]).data, true
}

func (c *LRU[T]) Set(key string, data T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		elem.Value = &entry[T]{key: key, data: data}
		c.order.MoveToFront(elem)
		return
	}

	c.items[key] = c.order.PushFront(&entry[T]{key: key, data: data})

	if c.order.Len() > c.maxSize {
		oldest := c.order.Back()
		if oldest != nil {
			delete(c.items, oldest.Value.(*entry[T]).key)
			c.order.Remove(oldest)
		}
	}
}

func (c *LRU[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		delete(c.items, key)
		c.order.Remove(elem)
	}
}

func (c *LRU[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
