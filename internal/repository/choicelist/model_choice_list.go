// Package choicelist resolves form selection keys against GORM models.
//
// A ModelChoiceList describes the candidate set of one model type: every row
// matching its specifications. It implements mapper.EntityResolver and
// mapper.BulkFinder for *M, so a mapper.CollectionKeyMapper bound to it turns
// submitted keys into loaded models with a single IN query.
//
// Models with a single primary key are keyed by that column's value. Models
// with a composite primary key are keyed by their position in the ordered
// candidate set, which is only stable as long as the rows do not change
// between rendering a form and receiving its submission.
package choicelist

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"

	"selection-mapper-be/internal/mapper"
	"selection-mapper-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

var schemaCache = &sync.Map{}

// KeyParser converts a raw submitted key into a primary key column value.
// Keys it rejects are reported as not found.
type KeyParser func(key mapper.Key) (interface{}, error)

type options struct {
	specs     []specification.Specification
	keyParser KeyParser
}

type Option func(*options)

// WithSpecifications restricts the candidate set.
func WithSpecifications(specs ...specification.Specification) Option {
	return func(o *options) {
		o.specs = append(o.specs, specs...)
	}
}

func WithKeyParser(p KeyParser) Option {
	return func(o *options) {
		o.keyParser = p
	}
}

// UUIDKey parses string and uuid.UUID keys.
func UUIDKey(key mapper.Key) (interface{}, error) {
	switch v := key.(type) {
	case uuid.UUID:
		return v, nil
	case string:
		return uuid.Parse(v)
	}
	return nil, fmt.Errorf("unsupported key type %T", key)
}

func identityKey(key mapper.Key) (interface{}, error) {
	return key, nil
}

type ModelChoiceList[M any] struct {
	db        *gorm.DB
	schema    *schema.Schema
	specs     []specification.Specification
	keyParser KeyParser
}

var (
	_ mapper.EntityResolver[*struct{}] = (*ModelChoiceList[struct{}])(nil)
	_ mapper.BulkFinder[*struct{}]     = (*ModelChoiceList[struct{}])(nil)
)

func New[M any](db *gorm.DB, opts ...Option) (*ModelChoiceList[M], error) {
	if db == nil {
		return nil, errors.New("choicelist: db is nil")
	}

	s, err := schema.Parse(new(M), schemaCache, db.NamingStrategy)
	if err != nil {
		return nil, fmt.Errorf("choicelist: parsing model schema: %w", err)
	}
	if len(s.PrimaryFields) == 0 {
		return nil, fmt.Errorf("choicelist: model %s has no primary key", s.Name)
	}

	o := &options{keyParser: identityKey}
	for _, opt := range opts {
		opt(o)
	}

	return &ModelChoiceList[M]{
		db:        db,
		schema:    s,
		specs:     o.specs,
		keyParser: o.keyParser,
	}, nil
}

func (l *ModelChoiceList[M]) IdentifierArity() int {
	return len(l.schema.PrimaryFields)
}

func (l *ModelChoiceList[M]) IdentifierValues(entity *M) ([]any, error) {
	if entity == nil {
		return nil, fmt.Errorf("choicelist: nil %s", l.schema.Name)
	}
	rv := reflect.ValueOf(entity)
	values := make([]any, len(l.schema.PrimaryFields))
	for i, field := range l.schema.PrimaryFields {
		values[i], _ = field.ValueOf(context.Background(), rv)
	}
	return values, nil
}

func (l *ModelChoiceList[M]) NewCollection() mapper.Collection[*M] {
	return mapper.NewList[*M]()
}

func (l *ModelChoiceList[M]) query(ctx context.Context) *gorm.DB {
	db := l.db.WithContext(ctx).Model(new(M))
	for _, spec := range l.specs {
		db = spec.Apply(db)
	}
	return db
}

func (l *ModelChoiceList[M]) primaryColumn(field *schema.Field) clause.Column {
	return clause.Column{Table: clause.CurrentTable, Name: field.DBName}
}

// AllEntities loads the candidate set, ordered by primary key unless one of
// the specifications orders it.
func (l *ModelChoiceList[M]) AllEntities(ctx context.Context) ([]*M, error) {
	db := l.query(ctx)
	if !specification.HasOrdering(l.specs) {
		for _, field := range l.schema.PrimaryFields {
			db = db.Order(clause.OrderByColumn{Column: l.primaryColumn(field)})
		}
	}

	var models []*M
	if err := db.Find(&models).Error; err != nil {
		return nil, err
	}
	return models, nil
}

func (l *ModelChoiceList[M]) FindEntity(ctx context.Context, key mapper.Key) (*M, bool, error) {
	if l.IdentifierArity() > 1 {
		all, err := l.AllEntities(ctx)
		if err != nil {
			return nil, false, err
		}
		idx, ok := mapper.PositionOf(key, len(all))
		if !ok {
			return nil, false, nil
		}
		return all[idx], true, nil
	}

	value, err := l.keyParser(key)
	if err != nil {
		return nil, false, nil
	}

	var m M
	err = l.query(ctx).
		Where(clause.Eq{Column: l.primaryColumn(l.schema.PrimaryFields[0]), Value: value}).
		Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &m, true, nil
}

// FindEntities resolves all keys with one query.
func (l *ModelChoiceList[M]) FindEntities(ctx context.Context, keys []mapper.Key) ([]mapper.Lookup[*M], error) {
	lookups := make([]mapper.Lookup[*M], len(keys))

	if l.IdentifierArity() > 1 {
		all, err := l.AllEntities(ctx)
		if err != nil {
			return nil, err
		}
		for i, key := range keys {
			if idx, ok := mapper.PositionOf(key, len(all)); ok {
				lookups[i] = mapper.Lookup[*M]{Entity: all[idx], Found: true}
			}
		}
		return lookups, nil
	}

	parsed := make([]interface{}, len(keys))
	values := make([]interface{}, 0, len(keys))
	for i, key := range keys {
		value, err := l.keyParser(key)
		if err != nil {
			continue
		}
		parsed[i] = value
		values = append(values, value)
	}
	if len(values) == 0 {
		return lookups, nil
	}

	pk := l.schema.PrimaryFields[0]
	var models []*M
	err := l.query(ctx).
		Where(clause.IN{Column: l.primaryColumn(pk), Values: values}).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	byKey := make(map[string]*M, len(models))
	for _, m := range models {
		v, _ := pk.ValueOf(ctx, reflect.ValueOf(m))
		byKey[fmt.Sprint(v)] = m
	}
	for i, value := range parsed {
		if value == nil {
			continue
		}
		if m, ok := byKey[fmt.Sprint(value)]; ok {
			lookups[i] = mapper.Lookup[*M]{Entity: m, Found: true}
		}
	}
	return lookups, nil
}
