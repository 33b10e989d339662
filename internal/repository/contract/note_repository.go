package contract

import (
	"context"

	"selection-mapper-be/internal/model"
	"selection-mapper-be/internal/repository/specification"
)

type NoteRepository interface {
	Create(ctx context.Context, note *model.Note) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*model.Note, error)
	// ReplaceTags makes tags the complete tag set of note, in order.
	ReplaceTags(ctx context.Context, note *model.Note, tags []*model.Tag) error
}
