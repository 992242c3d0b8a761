package engine

import (
	"context"
	"testing"
	"xlsum/internal/domain"
	"xlsum/internal/translator"
)

type namedTranslator string

func (n namedTranslator) Translate(_ context.Context, _ translator.Input) (string, error) {
	return string(n), nil
}

func TestTranslatorCacheGetAdd(t *testing.T) {
	cache := newTranslatorCache(2)
	pair := domain.Pair{Source: "en", Target: "fr"}

	if _, ok := cache.get(pair); ok {
		t.Fatalf("expected empty cache")
	}

	cache.add(pair, namedTranslator("en-fr"))

	got, ok := cache.get(pair)
	if !ok {
		t.Fatalf("expected cached translator to be present")
	}

	if got != namedTranslator("en-fr") {
		t.Fatalf("unexpected translator: %v", got)
	}
}

func TestTranslatorCacheKeepsFirstInsert(t *testing.T) {
	cache := newTranslatorCache(2)
	pair := domain.Pair{Source: "en", Target: "de"}

	first := cache.add(pair, namedTranslator("first"))
	second := cache.add(pair, namedTranslator("second"))

	if first != namedTranslator("first") || second != namedTranslator("first") {
		t.Fatalf("expected first insert to win, got %v and %v", first, second)
	}

	if cache.len() != 1 {
		t.Fatalf("expected 1 entry, got %d", cache.len())
	}
}

func TestTranslatorCachePairIsOrdered(t *testing.T) {
	cache := newTranslatorCache(2)
	cache.add(domain.Pair{Source: "en", Target: "fr"}, namedTranslator("en-fr"))

	if _, ok := cache.get(domain.Pair{Source: "fr", Target: "en"}); ok {
		t.Fatalf("expected reversed pair to miss")
	}
}

func TestTranslatorCacheEvictsLeastRecentlyUsed(t *testing.T) {
	cache := newTranslatorCache(2)
	a := domain.Pair{Source: "en", Target: "fr"}
	b := domain.Pair{Source: "en", Target: "es"}
	c := domain.Pair{Source: "en", Target: "de"}

	cache.add(a, namedTranslator("a"))
	cache.add(b, namedTranslator("b"))

	if _, ok := cache.get(a); !ok {
		t.Fatalf("expected entry a to exist before eviction check")
	}

	cache.add(c, namedTranslator("c"))

	if _, ok := cache.get(a); !ok {
		t.Fatalf("expected entry a to remain after evicting least recently used")
	}

	if _, ok := cache.get(b); ok {
		t.Fatalf("expected entry b to be evicted")
	}

	if _, ok := cache.get(c); !ok {
		t.Fatalf("expected entry c to be cached")
	}
}

func TestTranslatorCacheDefaultSize(t *testing.T) {
	cache := newTranslatorCache(0)
	if cache.maxEntries != DefaultTranslatorCacheSize {
		t.Fatalf("expected default size %d, got %d", DefaultTranslatorCacheSize, cache.maxEntries)
	}
}
