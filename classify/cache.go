package classify

import (
	"axnav/common"
	"axnav/dom"
)

type kind uint8

const (
	kindFocusable kind = iota
	kindInline
	kindAllInline
)

type cacheKey struct {
	n    dom.Node
	src  common.Source
	kind kind
}

// Cache memoises predicate results by node identity. Any structural change
// of the document drops everything. A nil *Cache caches nothing.
type Cache struct {
	gen     uint64
	entries map[cacheKey]bool
}

func newCache() *Cache {
	return &Cache{entries: make(map[cacheKey]bool)}
}

func (c *Cache) get(doc dom.Document, n dom.Node, src common.Source, k kind) (value, ok bool) {
	if c == nil {
		return false, false
	}
	if gen := doc.Generation(); gen != c.gen {
		c.gen = gen
		clear(c.entries)
		return false, false
	}
	value, ok = c.entries[cacheKey{n: n, src: src, kind: k}]
	return value, ok
}

func (c *Cache) put(n dom.Node, src common.Source, k kind, value bool) {
	if c == nil {
		return
	}
	c.entries[cacheKey{n: n, src: src, kind: k}] = value
}

// Len returns number of cached results.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Cached returns number of memoised results, zero without cache.
func (c *Classifier) Cached() int {
	return c.cache.Len()
}
