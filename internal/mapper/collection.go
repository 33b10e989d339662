package mapper

import "slices"

// Collection is the append-capable container a decode fills.
type Collection[E any] interface {
	Append(entity E)
	Len() int
	Items() []E
}

// List is the default Collection. The zero value is ready to use.
type List[E any] struct {
	items []E
}

func NewList[E any](items ...E) *List[E] {
	return &List[E]{items: slices.Clone(items)}
}

func (l *List[E]) Append(entity E) {
	l.items = append(l.items, entity)
}

func (l *List[E]) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// Items returns a copy of the entities in insertion order.
func (l *List[E]) Items() []E {
	if l == nil {
		return nil
	}
	return slices.Clone(l.items)
}
