package mapper

import (
	"context"
	"errors"
	"strconv"
)

type tag struct {
	ID   string
	Name string
}

type member struct {
	NotebookID string
	UserID     string
}

// fakeResolver is a slice-backed resolver keyed by the identity function.
type fakeResolver[E any] struct {
	arity      int
	entities   []E
	identity   func(E) []any
	findCalls  int
	allCalls   int
	failFind   error
	collection func() Collection[E]
}

func (r *fakeResolver[E]) IdentifierArity() int { return r.arity }

func (r *fakeResolver[E]) IdentifierValues(entity E) ([]any, error) {
	return r.identity(entity), nil
}

func (r *fakeResolver[E]) AllEntities(ctx context.Context) ([]E, error) {
	r.allCalls++
	return r.entities, nil
}

func (r *fakeResolver[E]) FindEntity(ctx context.Context, key Key) (E, bool, error) {
	r.findCalls++
	var zero E
	if r.failFind != nil {
		return zero, false, r.failFind
	}
	if r.arity > 1 {
		idx, ok := key.(int)
		if !ok || idx < 0 || idx >= len(r.entities) {
			return zero, false, nil
		}
		return r.entities[idx], true, nil
	}
	for _, e := range r.entities {
		if r.identity(e)[0] == key {
			return e, true, nil
		}
	}
	return zero, false, nil
}

func (r *fakeResolver[E]) NewCollection() Collection[E] {
	if r.collection != nil {
		return r.collection()
	}
	return NewList[E]()
}

// bulkResolver adds FindEntities on top of fakeResolver.
type bulkResolver[E any] struct {
	*fakeResolver[E]
	bulkCalls int
	short     bool
}

func (r *bulkResolver[E]) FindEntities(ctx context.Context, keys []Key) ([]Lookup[E], error) {
	r.bulkCalls++
	if r.short {
		return nil, nil
	}
	out := make([]Lookup[E], len(keys))
	for i, key := range keys {
		for _, e := range r.entities {
			if r.identity(e)[0] == key {
				out[i] = Lookup[E]{Entity: e, Found: true}
				break
			}
		}
	}
	return out, nil
}

type legacyAdapter struct {
	list any
}

func (a legacyAdapter) AdaptedList() any { return a.list }

var errStorage = errors.New("storage unavailable")

func newTagResolver(n int) *fakeResolver[*tag] {
	r := &fakeResolver[*tag]{
		arity:    1,
		identity: func(t *tag) []any { return []any{t.ID} },
	}
	for i := 1; i <= n; i++ {
		r.entities = append(r.entities, &tag{ID: strconv.Itoa(i), Name: "tag-" + strconv.Itoa(i)})
	}
	return r
}

func newMemberResolver(members ...*member) *fakeResolver[*member] {
	return &fakeResolver[*member]{
		arity:    2,
		entities: members,
		identity: func(m *member) []any { return []any{m.NotebookID, m.UserID} },
	}
}
