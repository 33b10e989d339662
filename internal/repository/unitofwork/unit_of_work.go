package unitofwork

import (
	"context"

	"selection-mapper-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	NoteRepository() contract.NoteRepository
	TagRepository() contract.TagRepository
}
