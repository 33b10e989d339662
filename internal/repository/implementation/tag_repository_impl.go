package implementation

import (
	"context"

	"selection-mapper-be/internal/mapper"
	"selection-mapper-be/internal/model"
	"selection-mapper-be/internal/repository/choicelist"
	"selection-mapper-be/internal/repository/contract"
	"selection-mapper-be/internal/repository/specification"

	"gorm.io/gorm"
)

type TagRepositoryImpl struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) contract.TagRepository {
	return &TagRepositoryImpl{db: db}
}

func (r *TagRepositoryImpl) Create(ctx context.Context, tag *model.Tag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

func (r *TagRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*model.Tag, error) {
	var models []*model.Tag
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return models, nil
}

func (r *TagRepositoryImpl) ChoiceList(specs ...specification.Specification) (mapper.EntityResolver[*model.Tag], error) {
	choices, err := choicelist.New[model.Tag](r.db,
		choicelist.WithSpecifications(specs...),
		choicelist.WithKeyParser(choicelist.UUIDKey),
	)
	if err != nil {
		return nil, err
	}
	return choices, nil
}
