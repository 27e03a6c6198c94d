package inventory

import (
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/KnightlyTreasures_Go/internal/domain"
)

// CacheSchemaVersion is part of every key.
// Bump it when the selection algorithm changes so stale entries are never served.
const CacheSchemaVersion = "1"

// CachedGenerator memoises selections per (week, purchased set, quest, location).
// Safe for concurrent use; the generator itself holds no mutable state.
type CachedGenerator struct {
	gen *Generator
	lru *expirable.LRU[string, []domain.Item]
}

// NewCachedGenerator wraps gen with an LRU of size entries that expire after ttl
func NewCachedGenerator(gen *Generator, size int, ttl time.Duration) *CachedGenerator {
	return &CachedGenerator{
		gen: gen,
		lru: expirable.NewLRU[string, []domain.Item](size, nil, ttl),
	}
}

// Generate returns the cached selection for in, computing it on a miss.
// The returned slice is shared; callers must not modify it.
func (c *CachedGenerator) Generate(in Input) []domain.Item {
	key := c.key(in)
	if items, ok := c.lru.Get(key); ok {
		return items
	}
	items := c.gen.Generate(in)
	c.lru.Add(key, items)
	return items
}

// Purge drops every cached selection, e.g. after the catalog is reloaded
func (c *CachedGenerator) Purge() {
	c.lru.Purge()
}

// Len returns the number of cached selections
func (c *CachedGenerator) Len() int {
	return c.lru.Len()
}

func (c *CachedGenerator) key(in Input) string {
	var b strings.Builder
	fmt.Fprintf(&b, "v%s|%s|w%d|n%d|p:%s", CacheSchemaVersion, c.gen.Source(), in.Week, len(in.Catalog),
		strings.Join(sortedKeys(in.Purchased), ","))
	if in.Quest != nil {
		fmt.Fprintf(&b, "|q:%s:%s", in.Quest.ID, strings.Join(in.Quest.Tags, ","))
	}
	if in.Location != nil {
		fmt.Fprintf(&b, "|l:%s:%s:%s", in.Location.Name, in.Location.Province, strings.Join(in.Location.ProvinceTags, ","))
	}
	return b.String()
}
