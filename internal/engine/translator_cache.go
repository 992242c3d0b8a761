package engine

import (
	"container/list"
	"sync"
	"xlsum/internal/domain"
	"xlsum/internal/translator"
)

const DefaultTranslatorCacheSize = 16

// translatorCache keeps the most recently used translators, one per pair.
type translatorCache struct {
	mu         sync.Mutex
	entries    map[domain.Pair]*list.Element
	order      *list.List
	maxEntries int
}

type translatorCacheEntry struct {
	pair       domain.Pair
	translator translator.Translator
}

func newTranslatorCache(maxEntries int) *translatorCache {
	if maxEntries <= 0 {
		maxEntries = DefaultTranslatorCacheSize
	}

	return &translatorCache{
		entries:    make(map[domain.Pair]*list.Element, maxEntries),
		order:      list.New(),
		maxEntries: maxEntries,
	}
}

func (c *translatorCache) get(pair domain.Pair) (translator.Translator, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[pair]
	if !ok {
		return nil, false
	}

	entry, ok := elem.Value.(*translatorCacheEntry)
	if !ok {
		return nil, false
	}

	c.order.MoveToFront(elem)

	return entry.translator, true
}

// add inserts t unless the pair is already cached, and returns the cached one.
func (c *translatorCache) add(pair domain.Pair, t translator.Translator) translator.Translator {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[pair]; ok {
		if entry, castOk := elem.Value.(*translatorCacheEntry); castOk {
			c.order.MoveToFront(elem)

			return entry.translator
		}
	}

	elem := c.order.PushFront(&translatorCacheEntry{
		pair:       pair,
		translator: t,
	})
	c.entries[pair] = elem

	c.enforceSizeLimitLocked()

	return t
}

func (c *translatorCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

func (c *translatorCache) enforceSizeLimitLocked() {
	for len(c.entries) > c.maxEntries {
		elem := c.order.Back()
		if elem == nil {
			return
		}
		c.removeElement(elem)
	}
}

func (c *translatorCache) removeElement(elem *list.Element) {
	entry, ok := elem.Value.(*translatorCacheEntry)
	if !ok {
		return
	}

	delete(c.entries, entry.pair)
	c.order.Remove(elem)
}
