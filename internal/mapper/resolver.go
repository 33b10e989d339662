package mapper

import (
	"context"
	"fmt"
	"reflect"
)

// Key is the external form of an entity's identity: the identifier value for
// single-field identifiers, a positional index for composite ones.
type Key = any

// EntityResolver is the choice list a mapper resolves entities through.
type EntityResolver[E any] interface {
	// IdentifierArity is the number of fields composing an entity's identity.
	IdentifierArity() int
	// IdentifierValues returns the identifier fields of entity, in order.
	IdentifierValues(entity E) ([]any, error)
	// AllEntities materializes the candidate set.
	AllEntities(ctx context.Context) ([]E, error)
	// FindEntity looks up a single key. A missing entity is reported with
	// found == false and a nil error.
	FindEntity(ctx context.Context, key Key) (entity E, found bool, err error)
	// NewCollection returns an empty collection for decode results.
	NewCollection() Collection[E]
}

// Lookup is the outcome for one key of a bulk lookup.
type Lookup[E any] struct {
	Entity E
	Found  bool
}

// BulkFinder is implemented by resolvers that can resolve many keys at once.
// FindEntities returns exactly one Lookup per key, in key order.
type BulkFinder[E any] interface {
	FindEntities(ctx context.Context, keys []Key) ([]Lookup[E], error)
}

// Adapter is implemented by legacy wrappers around a choice list.
type Adapter interface {
	AdaptedList() any
}

// ResolveChoiceList normalizes choiceList into an EntityResolver, unwrapping
// an Adapter when necessary.
func ResolveChoiceList[E any](choiceList any) (EntityResolver[E], error) {
	switch v := choiceList.(type) {
	case EntityResolver[E]:
		return v, nil
	case Adapter:
		adapted := v.AdaptedList()
		if r, ok := adapted.(EntityResolver[E]); ok {
			return r, nil
		}
		return nil, fmt.Errorf("%w: adapter %T wraps %T, not an entity resolver", ErrInvalidResolver, v, adapted)
	}
	return nil, fmt.Errorf("%w: expected an entity resolver, %T given", ErrInvalidResolver, choiceList)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
