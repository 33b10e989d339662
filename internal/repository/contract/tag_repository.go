package contract

import (
	"context"

	"selection-mapper-be/internal/mapper"
	"selection-mapper-be/internal/model"
	"selection-mapper-be/internal/repository/specification"
)

type TagRepository interface {
	Create(ctx context.Context, tag *model.Tag) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*model.Tag, error)
	// ChoiceList returns the tags matching specs as selectable choices keyed by id.
	ChoiceList(specs ...specification.Specification) (mapper.EntityResolver[*model.Tag], error)
}
