package memory

import (
	"context"
	"fmt"
	"time"

	"selection-mapper-be/internal/mapper"

	"github.com/patrickmn/go-cache"
)

const allEntitiesKey = "\x00all"

// CachedChoiceList memoizes lookups of another resolver. Only hits are
// cached, so a key that is missing now is looked up again next time.
// Positional keys of composite identifiers are resolved against the cached
// AllEntities snapshot, the same one Encode uses.
type CachedChoiceList[E any] struct {
	mapper.EntityResolver[E]
	cache *cache.Cache
}

// NewCachedChoiceList caches entries for ttl and purges expired ones every
// cleanup interval.
func NewCachedChoiceList[E any](inner mapper.EntityResolver[E], ttl, cleanup time.Duration) *CachedChoiceList[E] {
	return &CachedChoiceList[E]{
		EntityResolver: inner,
		cache:          cache.New(ttl, cleanup),
	}
}

func cacheKey(key mapper.Key) string {
	return fmt.Sprintf("%T:%v", key, key)
}

func (l *CachedChoiceList[E]) AllEntities(ctx context.Context) ([]E, error) {
	if x, found := l.cache.Get(allEntitiesKey); found {
		return x.([]E), nil
	}
	entities, err := l.EntityResolver.AllEntities(ctx)
	if err != nil {
		return nil, err
	}
	l.cache.Set(allEntitiesKey, entities, cache.DefaultExpiration)
	return entities, nil
}

// positional resolves a composite-identifier key against the cached snapshot.
func (l *CachedChoiceList[E]) positional(ctx context.Context, key mapper.Key) (E, bool, error) {
	var zero E
	all, err := l.AllEntities(ctx)
	if err != nil {
		return zero, false, err
	}
	idx, ok := mapper.PositionOf(key, len(all))
	if !ok {
		return zero, false, nil
	}
	return all[idx], true, nil
}

func (l *CachedChoiceList[E]) FindEntity(ctx context.Context, key mapper.Key) (E, bool, error) {
	if l.IdentifierArity() > 1 {
		return l.positional(ctx, key)
	}
	if x, found := l.cache.Get(cacheKey(key)); found {
		return x.(E), true, nil
	}
	entity, found, err := l.EntityResolver.FindEntity(ctx, key)
	if err != nil || !found {
		return entity, found, err
	}
	l.cache.Set(cacheKey(key), entity, cache.DefaultExpiration)
	return entity, true, nil
}

// FindEntities serves cached keys and forwards the rest in one call when the
// wrapped resolver supports bulk lookups.
func (l *CachedChoiceList[E]) FindEntities(ctx context.Context, keys []mapper.Key) ([]mapper.Lookup[E], error) {
	lookups := make([]mapper.Lookup[E], len(keys))
	if l.IdentifierArity() > 1 {
		for i, key := range keys {
			entity, found, err := l.positional(ctx, key)
			if err != nil {
				return nil, err
			}
			lookups[i] = mapper.Lookup[E]{Entity: entity, Found: found}
		}
		return lookups, nil
	}

	var missIdx []int
	var missKeys []mapper.Key
	for i, key := range keys {
		if x, found := l.cache.Get(cacheKey(key)); found {
			lookups[i] = mapper.Lookup[E]{Entity: x.(E), Found: true}
			continue
		}
		missIdx = append(missIdx, i)
		missKeys = append(missKeys, key)
	}
	if len(missKeys) == 0 {
		return lookups, nil
	}

	var fetched []mapper.Lookup[E]
	if bulk, ok := l.EntityResolver.(mapper.BulkFinder[E]); ok {
		var err error
		if fetched, err = bulk.FindEntities(ctx, missKeys); err != nil {
			return nil, err
		}
		if len(fetched) != len(missKeys) {
			return nil, fmt.Errorf("bulk lookup returned %d results for %d keys", len(fetched), len(missKeys))
		}
	} else {
		fetched = make([]mapper.Lookup[E], len(missKeys))
		for i, key := range missKeys {
			entity, found, err := l.EntityResolver.FindEntity(ctx, key)
			if err != nil {
				return nil, err
			}
			fetched[i] = mapper.Lookup[E]{Entity: entity, Found: found}
		}
	}

	for j, lookup := range fetched {
		lookups[missIdx[j]] = lookup
		if lookup.Found {
			l.cache.Set(cacheKey(missKeys[j]), lookup.Entity, cache.DefaultExpiration)
		}
	}
	return lookups, nil
}

// Flush drops every cached entry.
func (l *CachedChoiceList[E]) Flush() {
	l.cache.Flush()
}
