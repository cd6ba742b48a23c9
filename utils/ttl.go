package utils

import (
	"sort"
	"sync"
	"time"
)

// https://github.com/Konstantin8105/SimpleTTL
// entry - typical element of cache
type entry[T any] struct {
	expiry time.Time
	value  T
	order  uint64
}

func (e *entry[_]) expired(now time.Time) bool {
	return !e.expiry.IsZero() && e.expiry.Before(now)
}

// Cache - simple implementation of cache
// More information: https://en.wikipedia.org/wiki/Time_to_live
//
// Expired entries are dropped lazily by writers.
type Cache[T any] struct {
	lock    sync.RWMutex
	cache   map[string]*entry[T]
	ttl     time.Duration
	limit   int
	counter uint64
}

// NewCache - initialization of new cache.
// ttl <= 0 keeps entries until they are deleted, limit <= 0 means unbounded.
// When limit is reached the oldest inserted entry is evicted.
func NewCache[T any](ttl time.Duration, limit int) *Cache[T] {
	if ttl > 0 && ttl < time.Second {
		ttl = time.Second
	}
	return &Cache[T]{
		cache: make(map[string]*entry[T]),
		ttl:   ttl,
		limit: limit,
	}
}

// Count - return amount of live elements.
func (cache *Cache[_]) Count() int {
	cache.lock.RLock()
	defer cache.lock.RUnlock()

	now := time.Now()
	n := 0
	for _, e := range cache.cache {
		if !e.expired(now) {
			n++
		}
	}
	return n
}

// Get - return value from cache
func (cache *Cache[T]) Get(key string) (T, bool) {
	cache.lock.RLock()
	defer cache.lock.RUnlock()

	e, ok := cache.cache[key]
	if ok && !e.expired(time.Now()) {
		return e.value, true
	}
	var zero T
	return zero, false
}

// Add - add key/value in cache. Replacing an existing key keeps its
// insertion order and refreshes its expiry.
func (cache *Cache[T]) Add(key string, value T) {
	cache.lock.Lock()
	defer cache.lock.Unlock()

	now := time.Now()
	var expiry time.Time
	if cache.ttl > 0 {
		expiry = now.Add(cache.ttl)
	}
	if e, ok := cache.cache[key]; ok && !e.expired(now) {
		e.value = value
		e.expiry = expiry
		return
	}
	cache.purge(now)
	if cache.limit > 0 && len(cache.cache) >= cache.limit {
		cache.evictOldest()
	}
	cache.counter++
	cache.cache[key] = &entry[T]{
		value:  value,
		expiry: expiry,
		order:  cache.counter,
	}
}

// Delete - remove key from cache, returning the live value it held.
func (cache *Cache[T]) Delete(key string) (T, bool) {
	cache.lock.Lock()
	defer cache.lock.Unlock()

	e, ok := cache.cache[key]
	if !ok {
		var zero T
		return zero, false
	}
	delete(cache.cache, key)
	if e.expired(time.Now()) {
		var zero T
		return zero, false
	}
	return e.value, true
}

// GetKeys - return all live keys in insertion order
func (cache *Cache[T]) GetKeys() []string {
	cache.lock.RLock()
	defer cache.lock.RUnlock()

	now := time.Now()
	live := make([]*entry[T], 0, len(cache.cache))
	keys := make(map[*entry[T]]string, len(cache.cache))
	for k, e := range cache.cache {
		if e.expired(now) {
			continue
		}
		live = append(live, e)
		keys[e] = k
	}
	sort.Slice(live, func(i, j int) bool {
		return live[i].order < live[j].order
	})
	ret := make([]string, len(live))
	for i, e := range live {
		ret[i] = keys[e]
	}
	return ret
}

func (cache *Cache[T]) purge(now time.Time) {
	if cache.ttl <= 0 {
		return
	}
	for k, e := range cache.cache {
		if e.expired(now) {
			delete(cache.cache, k)
		}
	}
}

func (cache *Cache[T]) evictOldest() {
	var (
		oldest string
		order  uint64
	)
	for k, e := range cache.cache {
		if order == 0 || e.order < order {
			oldest, order = k, e.order
		}
	}
	if order != 0 {
		delete(cache.cache, oldest)
	}
}
