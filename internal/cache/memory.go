package cache

import (
	"container/list"
	"sync"
	"time"
)

// Category selects which TTL and capacity bucket an entry lives in.
type Category string

const (
	Subjects Category = "subjects"
	Authors  Category = "authors"
	Works    Category = "works"
	Ratings  Category = "ratings"
	Results  Category = "results"
)

type bucketConfig struct {
	ttl      time.Duration
	capacity int
}

var bucketDefaults = map[Category]bucketConfig{
	Subjects: {6 * time.Hour, 2048},
	Authors:  {12 * time.Hour, 2048},
	Works:    {24 * time.Hour, 4096},
	Ratings:  {24 * time.Hour, 4096},
	Results:  {10 * time.Minute, 512},
}

type entry struct {
	key      string
	value    any
	storedAt time.Time
}

type bucket struct {
	cfg   bucketConfig
	order *list.List // front = most recently used
	items map[string]*list.Element
}

// TTLCache is a bounded in-memory cache with one LRU bucket per category.
// Entries expire lazily: a read past the TTL deletes the entry and reports
// a miss. There is no background sweep; capacity is enforced on write.
type TTLCache struct {
	mu      sync.Mutex
	now     func() time.Time
	buckets map[Category]*bucket
}

func NewTTLCache() *TTLCache {
	return NewTTLCacheWithClock(time.Now)
}

// NewTTLCacheWithClock injects the clock, used by tests to pin TTL behavior.
func NewTTLCacheWithClock(now func() time.Time) *TTLCache {
	buckets := make(map[Category]*bucket, len(bucketDefaults))
	for cat, cfg := range bucketDefaults {
		buckets[cat] = &bucket{
			cfg:   cfg,
			order: list.New(),
			items: make(map[string]*list.Element),
		}
	}
	return &TTLCache{now: now, buckets: buckets}
}

// Get returns the cached value, or ok=false when the key was never set,
// was evicted, or has outlived its category TTL.
func (c *TTLCache) Get(cat Category, key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	b, ok := c.buckets[cat]
	if !ok {
		return nil, false
	}
	el, ok := b.items[key]
	if !ok {
		return nil, false
	}
	e := el.Value.(*entry)
	if c.now().Sub(e.storedAt) >= b.cfg.ttl {
		b.order.Remove(el)
		delete(b.items, key)
		return nil, false
	}
	b.order.MoveToFront(el)
	return e.value, true
}

// Set stores the value, refreshing the stored-at time on overwrite and
// evicting the least recently used entry when the bucket is full.
func (c *TTLCache) Set(cat Category, key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	b, ok := c.buckets[cat]
	if !ok {
		return
	}
	if el, ok := b.items[key]; ok {
		e := el.Value.(*entry)
		e.value = value
		e.storedAt = c.now()
		b.order.MoveToFront(el)
		return
	}
	if b.order.Len() >= b.cfg.capacity {
		oldest := b.order.Back()
		if oldest != nil {
			b.order.Remove(oldest)
			delete(b.items, oldest.Value.(*entry).key)
		}
	}
	el := b.order.PushFront(&entry{key: key, value: value, storedAt: c.now()})
	b.items[key] = el
}

// Len reports the live entry count of a category, expired entries included
// until a read purges them.
func (c *TTLCache) Len(cat Category) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if b, ok := c.buckets[cat]; ok {
		return b.order.Len()
	}
	return 0
}
