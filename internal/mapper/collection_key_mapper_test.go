package mapper

import (
	"context"
	"errors"
	"testing"

	"selection-mapper-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	t.Run("nil resolver", func(t *testing.T) {
		_, err := New[*tag](nil)
		assert.ErrorIs(t, err, ErrInvalidResolver)
	})

	t.Run("typed nil resolver", func(t *testing.T) {
		var r *fakeResolver[*tag]
		_, err := New[*tag](r)
		assert.ErrorIs(t, err, ErrInvalidResolver)
	})

	t.Run("zero arity", func(t *testing.T) {
		r := newTagResolver(1)
		r.arity = 0
		_, err := New[*tag](r)
		assert.ErrorIs(t, err, ErrInvalidResolver)
	})

	t.Run("valid", func(t *testing.T) {
		m, err := New[*tag](newTagResolver(1))
		require.NoError(t, err)
		assert.NotNil(t, m)
	})
}

func TestNewFromChoiceList(t *testing.T) {
	r := newTagResolver(2)

	t.Run("direct resolver", func(t *testing.T) {
		m, err := NewFromChoiceList[*tag](r)
		require.NoError(t, err)
		assert.Same(t, r, m.resolver)
	})

	t.Run("legacy adapter is unwrapped", func(t *testing.T) {
		m, err := NewFromChoiceList[*tag](legacyAdapter{list: r})
		require.NoError(t, err)
		assert.Same(t, r, m.resolver)
	})

	t.Run("adapter around something else", func(t *testing.T) {
		_, err := NewFromChoiceList[*tag](legacyAdapter{list: "nope"})
		assert.ErrorIs(t, err, ErrInvalidResolver)
		assert.Contains(t, err.Error(), "string")
	})

	t.Run("unrecognized type", func(t *testing.T) {
		_, err := NewFromChoiceList[*tag](42)
		assert.ErrorIs(t, err, ErrInvalidResolver)
		assert.Contains(t, err.Error(), "int given")
	})

	t.Run("resolver for another entity type", func(t *testing.T) {
		_, err := NewFromChoiceList[*member](r)
		assert.ErrorIs(t, err, ErrInvalidResolver)
	})
}

func TestEncode_SingleIdentifier(t *testing.T) {
	ctx := context.Background()
	r := newTagResolver(3)
	m, err := New[*tag](r)
	require.NoError(t, err)

	t.Run("nil collection", func(t *testing.T) {
		keys, err := m.Encode(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, []Key{}, keys)
	})

	t.Run("typed nil list", func(t *testing.T) {
		var l *List[*tag]
		keys, err := m.Encode(ctx, l)
		require.NoError(t, err)
		assert.Empty(t, keys)
	})

	t.Run("order and duplicates are kept", func(t *testing.T) {
		e := r.entities
		keys, err := m.Encode(ctx, NewList(e[2], e[0], e[2]))
		require.NoError(t, err)
		assert.Equal(t, []Key{"3", "1", "3"}, keys)
	})

	t.Run("does not load the candidate set", func(t *testing.T) {
		assert.Zero(t, r.allCalls)
	})

	t.Run("entity without identifier", func(t *testing.T) {
		broken := newTagResolver(0)
		broken.identity = func(*tag) []any { return nil }
		bm, err := New[*tag](broken)
		require.NoError(t, err)

		_, err = bm.Encode(ctx, NewList(&tag{ID: "x"}))
		var encErr *EncodingError
		assert.ErrorAs(t, err, &encErr)
	})
}

func TestEncode_CompositeIdentifier(t *testing.T) {
	ctx := context.Background()
	e1 := &member{NotebookID: "nb1", UserID: "u1"}
	e2 := &member{NotebookID: "nb1", UserID: "u2"}
	e3 := &member{NotebookID: "nb2", UserID: "u1"}
	r := newMemberResolver(e1, e2, e3)

	m, err := New[*member](r)
	require.NoError(t, err)

	keys, err := m.Encode(ctx, NewList(e2, e1))
	require.NoError(t, err)
	assert.Equal(t, []Key{1, 0}, keys)
	assert.Equal(t, 1, r.allCalls, "candidate set is materialized once")

	t.Run("equal identity, different instance", func(t *testing.T) {
		keys, err := m.Encode(ctx, NewList(&member{NotebookID: "nb2", UserID: "u1"}))
		require.NoError(t, err)
		assert.Equal(t, []Key{2}, keys)
	})

	t.Run("entity outside the candidate set", func(t *testing.T) {
		stranger := &member{NotebookID: "nb9", UserID: "u9"}
		_, err := m.Encode(ctx, NewList(e1, stranger))

		var encErr *EncodingError
		require.ErrorAs(t, err, &encErr)
		assert.Same(t, stranger, encErr.Entity)
	})
}

func TestDecode_EmptyInputs(t *testing.T) {
	ctx := context.Background()
	r := newTagResolver(2)
	m, err := New[*tag](r)
	require.NoError(t, err)

	tests := []struct {
		name string
		keys any
	}{
		{name: "nil", keys: nil},
		{name: "empty string marker", keys: ""},
		{name: "empty slice", keys: []Key{}},
		{name: "empty string slice", keys: []string{}},
		{name: "nil string slice", keys: []string(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := m.Decode(ctx, tt.keys)
			require.NoError(t, err)
			require.NotNil(t, c)
			assert.Equal(t, 0, c.Len())
		})
	}
	assert.Zero(t, r.findCalls)
}

func TestDecode_UnexpectedType(t *testing.T) {
	m, err := New[*tag](newTagResolver(2))
	require.NoError(t, err)

	for _, keys := range []any{"1", 7, map[string]string{"a": "1"}, struct{}{}} {
		_, err := m.Decode(context.Background(), keys)

		var typeErr *UnexpectedTypeError
		require.ErrorAs(t, err, &typeErr, "input %#v", keys)
		assert.Equal(t, "sequence", typeErr.Expected)
	}
}

func TestDecode_PerKey(t *testing.T) {
	ctx := context.Background()
	r := newTagResolver(3)
	m, err := New[*tag](r)
	require.NoError(t, err)

	c, err := m.Decode(ctx, []string{"3", "1", "3"})
	require.NoError(t, err)
	assert.Equal(t, []*tag{r.entities[2], r.entities[0], r.entities[2]}, c.Items())
	assert.Equal(t, 3, r.findCalls)

	t.Run("array input", func(t *testing.T) {
		c, err := m.Decode(ctx, [2]string{"2", "1"})
		require.NoError(t, err)
		assert.Equal(t, []*tag{r.entities[1], r.entities[0]}, c.Items())
	})
}

func TestDecode_NotFoundIsAggregated(t *testing.T) {
	ctx := context.Background()
	r := newTagResolver(20)

	core, logs := observer.New(zap.DebugLevel)
	m, err := New[*tag](r, WithLogger(logger.NewFromZap(zap.New(core))))
	require.NoError(t, err)

	t.Run("single missing key", func(t *testing.T) {
		c, err := m.Decode(ctx, []Key{"1", "2", "99"})
		assert.Nil(t, c)

		var trErr *TransformationError
		require.ErrorAs(t, err, &trErr)
		assert.Equal(t, []Key{"99"}, trErr.Keys)
	})

	t.Run("every missing key in input order", func(t *testing.T) {
		r.findCalls = 0
		_, err := m.Decode(ctx, []Key{"3", "100", "17", "200", "5"})

		var trErr *TransformationError
		require.ErrorAs(t, err, &trErr)
		assert.Equal(t, []Key{"100", "200"}, trErr.Keys)
		assert.Equal(t, 5, r.findCalls, "no short-circuit on the first miss")
		assert.Equal(t, `The entities with keys "100", "200" could not be found`, err.Error())
	})

	assert.Equal(t, 2, logs.FilterMessage("Unresolved selection keys").Len())
}

func TestDecode_ResolverError(t *testing.T) {
	r := newTagResolver(2)
	r.failFind = errStorage
	m, err := New[*tag](r)
	require.NoError(t, err)

	_, err = m.Decode(context.Background(), []string{"1"})
	assert.ErrorIs(t, err, errStorage)

	var trErr *TransformationError
	assert.False(t, errors.As(err, &trErr))
}

func TestDecode_NilCollection(t *testing.T) {
	r := newTagResolver(1)
	r.collection = func() Collection[*tag] { return nil }
	m, err := New[*tag](r)
	require.NoError(t, err)

	_, err = m.Decode(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidResolver)
}

func TestDecode_Bulk(t *testing.T) {
	ctx := context.Background()
	r := &bulkResolver[*tag]{fakeResolver: newTagResolver(3)}
	m, err := New[*tag](r)
	require.NoError(t, err)

	c, err := m.Decode(ctx, []string{"2", "3"})
	require.NoError(t, err)
	assert.Equal(t, []*tag{r.entities[1], r.entities[2]}, c.Items())
	assert.Equal(t, 1, r.bulkCalls)
	assert.Zero(t, r.findCalls)

	t.Run("missing keys", func(t *testing.T) {
		_, err := m.Decode(ctx, []string{"7", "1", "8"})

		var trErr *TransformationError
		require.ErrorAs(t, err, &trErr)
		assert.Equal(t, []Key{"7", "8"}, trErr.Keys)
	})

	t.Run("short result", func(t *testing.T) {
		short := &bulkResolver[*tag]{fakeResolver: newTagResolver(3), short: true}
		sm, err := New[*tag](short)
		require.NoError(t, err)

		_, err = sm.Decode(ctx, []string{"1"})
		assert.ErrorContains(t, err, "0 results for 1 keys")
	})
}

// assertSameItems checks that got holds exactly the want pointers, in order.
func assertSameItems[E any](t *testing.T, want, got []*E) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Same(t, want[i], got[i], "item %d", i)
	}
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()

	t.Run("single identifier", func(t *testing.T) {
		r := newTagResolver(5)
		m, err := New[*tag](r)
		require.NoError(t, err)

		e := r.entities
		original := NewList(e[4], e[0], e[0], e[2])

		keys, err := m.Encode(ctx, original)
		require.NoError(t, err)
		decoded, err := m.Decode(ctx, keys)
		require.NoError(t, err)

		assertSameItems(t, original.Items(), decoded.Items())
	})

	t.Run("composite identifier", func(t *testing.T) {
		e1 := &member{NotebookID: "nb1", UserID: "u1"}
		e2 := &member{NotebookID: "nb1", UserID: "u2"}
		m, err := New[*member](newMemberResolver(e1, e2))
		require.NoError(t, err)

		keys, err := m.Encode(ctx, NewList(e2, e1))
		require.NoError(t, err)
		decoded, err := m.Decode(ctx, keys)
		require.NoError(t, err)

		assertSameItems(t, []*member{e2, e1}, decoded.Items())
	})
}
