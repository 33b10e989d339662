// Package mapper converts between collections of entities and the selection
// keys a form submits for them.
package mapper

import (
	"context"
	"fmt"
	"reflect"
	"slices"

	"selection-mapper-be/internal/pkg/logger"
)

const logModule = "mapper"

type options struct {
	logger logger.ILogger
}

type Option func(*options)

// WithLogger sets the logger that receives decode failures.
func WithLogger(l logger.ILogger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// CollectionKeyMapper translates a Collection of entities to keys (Encode) and
// keys back to a Collection (Decode). It holds no state besides its resolver.
type CollectionKeyMapper[E any] struct {
	resolver EntityResolver[E]
	logger   logger.ILogger
}

func New[E any](resolver EntityResolver[E], opts ...Option) (*CollectionKeyMapper[E], error) {
	if isNil(resolver) {
		return nil, fmt.Errorf("%w: resolver is nil", ErrInvalidResolver)
	}
	if arity := resolver.IdentifierArity(); arity < 1 {
		return nil, fmt.Errorf("%w: identifier arity must be at least 1, got %d", ErrInvalidResolver, arity)
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = logger.NewNopLogger()
	}

	return &CollectionKeyMapper[E]{
		resolver: resolver,
		logger:   o.logger,
	}, nil
}

// NewFromChoiceList builds a mapper from an untyped choice list, which may be
// a resolver or an Adapter wrapping one.
func NewFromChoiceList[E any](choiceList any, opts ...Option) (*CollectionKeyMapper[E], error) {
	resolver, err := ResolveChoiceList[E](choiceList)
	if err != nil {
		return nil, err
	}
	return New(resolver, opts...)
}

// Encode returns one key per entity of collection, in order. A nil
// collection encodes to an empty slice.
func (m *CollectionKeyMapper[E]) Encode(ctx context.Context, collection Collection[E]) ([]Key, error) {
	if collection == nil {
		return []Key{}, nil
	}
	entities := collection.Items()

	if m.resolver.IdentifierArity() > 1 {
		return m.encodePositional(ctx, entities)
	}

	keys := make([]Key, 0, len(entities))
	for _, entity := range entities {
		values, err := m.resolver.IdentifierValues(entity)
		if err != nil {
			return nil, fmt.Errorf("reading identifier values: %w", err)
		}
		if len(values) == 0 {
			return nil, &EncodingError{Entity: entity}
		}
		keys = append(keys, values[0])
	}
	return keys, nil
}

// encodePositional keys composite-identifier entities by their index in the
// materialized candidate set.
func (m *CollectionKeyMapper[E]) encodePositional(ctx context.Context, entities []E) ([]Key, error) {
	candidates, err := m.resolver.AllEntities(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading choices: %w", err)
	}

	identities := make([][]any, len(candidates))
	for i, candidate := range candidates {
		if identities[i], err = m.resolver.IdentifierValues(candidate); err != nil {
			return nil, fmt.Errorf("reading identifier values: %w", err)
		}
	}

	keys := make([]Key, 0, len(entities))
	for _, entity := range entities {
		values, err := m.resolver.IdentifierValues(entity)
		if err != nil {
			return nil, fmt.Errorf("reading identifier values: %w", err)
		}
		idx := slices.IndexFunc(identities, func(identity []any) bool {
			return reflect.DeepEqual(identity, values)
		})
		if idx < 0 {
			return nil, &EncodingError{Entity: entity}
		}
		keys = append(keys, idx)
	}
	return keys, nil
}

// Decode resolves keys into a new collection. A nil or empty-string input
// yields an empty collection; any other non-sequence fails with
// *UnexpectedTypeError. When some keys cannot be resolved, all of them are
// reported together in a *TransformationError and no collection is returned.
func (m *CollectionKeyMapper[E]) Decode(ctx context.Context, keys any) (Collection[E], error) {
	collection := m.resolver.NewCollection()
	if isNil(collection) {
		return nil, fmt.Errorf("%w: resolver returned a nil collection", ErrInvalidResolver)
	}

	if keys == nil {
		return collection, nil
	}
	if s, ok := keys.(string); ok && s == "" {
		return collection, nil
	}

	list, err := toKeys(keys)
	if err != nil {
		return nil, err
	}

	var notFound []Key
	if bulk, ok := m.resolver.(BulkFinder[E]); ok && len(list) > 0 {
		lookups, err := bulk.FindEntities(ctx, list)
		if err != nil {
			return nil, fmt.Errorf("finding entities: %w", err)
		}
		if len(lookups) != len(list) {
			return nil, fmt.Errorf("bulk lookup returned %d results for %d keys", len(lookups), len(list))
		}
		for i, lookup := range lookups {
			if lookup.Found {
				collection.Append(lookup.Entity)
			} else {
				notFound = append(notFound, list[i])
			}
		}
	} else {
		for _, key := range list {
			entity, found, err := m.resolver.FindEntity(ctx, key)
			if err != nil {
				return nil, fmt.Errorf("finding entity %v: %w", key, err)
			}
			if found {
				collection.Append(entity)
			} else {
				notFound = append(notFound, key)
			}
		}
	}

	if len(notFound) > 0 {
		m.logger.Debug(logModule, "Unresolved selection keys", map[string]interface{}{
			"keys":  notFound,
			"total": len(list),
		})
		return nil, &TransformationError{Keys: notFound}
	}
	return collection, nil
}

func toKeys(keys any) ([]Key, error) {
	switch v := keys.(type) {
	case []Key:
		return v, nil
	case []string:
		out := make([]Key, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out, nil
	}

	rv := reflect.ValueOf(keys)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]Key, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out, nil
	}
	return nil, &UnexpectedTypeError{Value: keys, Expected: "sequence"}
}
