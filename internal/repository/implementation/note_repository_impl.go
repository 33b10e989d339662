package implementation

import (
	"context"
	"errors"

	"selection-mapper-be/internal/model"
	"selection-mapper-be/internal/repository/contract"
	"selection-mapper-be/internal/repository/specification"

	"gorm.io/gorm"
)

type NoteRepositoryImpl struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) contract.NoteRepository {
	return &NoteRepositoryImpl{db: db}
}

func applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *NoteRepositoryImpl) Create(ctx context.Context, note *model.Note) error {
	return r.db.WithContext(ctx).Create(note).Error
}

func (r *NoteRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*model.Note, error) {
	var m model.Note
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *NoteRepositoryImpl) ReplaceTags(ctx context.Context, note *model.Note, tags []*model.Tag) error {
	association := r.db.WithContext(ctx).Model(note).Association("Tags")
	if len(tags) == 0 {
		if err := association.Clear(); err != nil {
			return err
		}
	} else if err := association.Replace(tags); err != nil {
		return err
	}
	note.Tags = tags
	return nil
}
