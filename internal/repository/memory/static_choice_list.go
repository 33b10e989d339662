package memory

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"slices"

	"selection-mapper-be/internal/mapper"
)

// StaticChoiceList resolves keys against a fixed, in-memory candidate set.
type StaticChoiceList[E any] struct {
	entities []E
	arity    int
	identify func(E) []any
}

// NewStaticChoiceList copies entities. identify must return arity values for
// every entity.
func NewStaticChoiceList[E any](entities []E, arity int, identify func(E) []any) (*StaticChoiceList[E], error) {
	if arity < 1 {
		return nil, fmt.Errorf("static choice list: arity must be at least 1, got %d", arity)
	}
	if identify == nil {
		return nil, errors.New("static choice list: identify func is nil")
	}
	return &StaticChoiceList[E]{
		entities: slices.Clone(entities),
		arity:    arity,
		identify: identify,
	}, nil
}

func (l *StaticChoiceList[E]) IdentifierArity() int {
	return l.arity
}

func (l *StaticChoiceList[E]) IdentifierValues(entity E) ([]any, error) {
	values := l.identify(entity)
	if len(values) != l.arity {
		return nil, fmt.Errorf("static choice list: got %d identifier values, want %d", len(values), l.arity)
	}
	return values, nil
}

func (l *StaticChoiceList[E]) AllEntities(ctx context.Context) ([]E, error) {
	return slices.Clone(l.entities), nil
}

func (l *StaticChoiceList[E]) FindEntity(ctx context.Context, key mapper.Key) (E, bool, error) {
	var zero E
	if l.arity > 1 {
		idx, ok := mapper.PositionOf(key, len(l.entities))
		if !ok {
			return zero, false, nil
		}
		return l.entities[idx], true, nil
	}

	for _, e := range l.entities {
		values, err := l.IdentifierValues(e)
		if err != nil {
			return zero, false, err
		}
		if sameKey(values[0], key) {
			return e, true, nil
		}
	}
	return zero, false, nil
}

func (l *StaticChoiceList[E]) NewCollection() mapper.Collection[E] {
	return mapper.NewList[E]()
}

// sameKey compares an identifier value with a submitted key, falling back to
// string form so "3" matches 3 the way a form round-trip would.
func sameKey(value any, key mapper.Key) bool {
	if reflect.DeepEqual(value, key) {
		return true
	}
	return fmt.Sprint(value) == fmt.Sprint(key)
}
