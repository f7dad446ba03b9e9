package renderer

// cacheEntry is one cached GPU resource plus the source version it was built from.
type cacheEntry[V any] struct {
	value   V
	version uint64
	used    bool
}

// resourceCache holds GPU resources keyed by their CPU-side owner. Entries not looked up since the last
// sweep are released, as are entries whose owner reports a newer version.
type resourceCache[K comparable, V any] struct {
	entries map[K]*cacheEntry[V]
	release func(V)
}

func newResourceCache[K comparable, V any](release func(V)) *resourceCache[K, V] {
	return &resourceCache[K, V]{
		entries: make(map[K]*cacheEntry[V]),
		release: release,
	}
}

// get returns the cached value for key if it was built from version, marking it used.
// A stale entry is released and dropped.
func (c *resourceCache[K, V]) get(key K, version uint64) (V, bool) {
	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if e.version != version {
		c.drop(key, e)
		var zero V
		return zero, false
	}
	e.used = true
	return e.value, true
}

// put stores value for key, replacing and releasing any previous entry.
func (c *resourceCache[K, V]) put(key K, version uint64, value V) {
	if e, ok := c.entries[key]; ok {
		c.drop(key, e)
	}
	c.entries[key] = &cacheEntry[V]{value: value, version: version, used: true}
}

// sweep releases every entry not used since the previous sweep and clears the used marks.
// It returns the number of released entries.
func (c *resourceCache[K, V]) sweep() int {
	released := 0
	for key, e := range c.entries {
		if !e.used {
			c.drop(key, e)
			released++
			continue
		}
		e.used = false
	}
	return released
}

func (c *resourceCache[K, V]) len() int {
	return len(c.entries)
}

// clear releases every entry.
func (c *resourceCache[K, V]) clear() {
	for key, e := range c.entries {
		c.drop(key, e)
	}
}

func (c *resourceCache[K, V]) drop(key K, e *cacheEntry[V]) {
	delete(c.entries, key)
	if c.release != nil {
		c.release(e.value)
	}
}
