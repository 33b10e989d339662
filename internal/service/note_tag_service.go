package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"selection-mapper-be/internal/dto"
	"selection-mapper-be/internal/mapper"
	"selection-mapper-be/internal/model"
	"selection-mapper-be/internal/pkg/logger"
	"selection-mapper-be/internal/repository/contract"
	"selection-mapper-be/internal/repository/memory"
	"selection-mapper-be/internal/repository/specification"
	"selection-mapper-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

const noteTagModule = "note_tag_service"

var ErrNoteNotFound = errors.New("note not found")

type INoteTagService interface {
	GetTags(ctx context.Context, userId uuid.UUID, noteId uuid.UUID) (*dto.NoteTagsResponse, error)
	ReplaceTags(ctx context.Context, userId uuid.UUID, req *dto.ReplaceNoteTagsRequest) (*dto.NoteTagsResponse, error)
}

type noteTagService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger

	// Per-user cached tag choice lists; nil when caching is disabled.
	choiceLists *cache.Cache
	cacheTTL    time.Duration
	cleanup     time.Duration
}

// NewNoteTagService builds the service. A zero cacheTTL resolves tags
// against the database on every request.
func NewNoteTagService(
	uowFactory unitofwork.RepositoryFactory,
	sysLogger logger.ILogger,
	cacheTTL time.Duration,
	cleanup time.Duration,
) INoteTagService {
	s := &noteTagService{
		uowFactory: uowFactory,
		logger:     sysLogger,
		cacheTTL:   cacheTTL,
		cleanup:    cleanup,
	}
	if cacheTTL > 0 {
		s.choiceLists = cache.New(cacheTTL, cleanup)
	}
	return s
}

// tagMapper binds a mapper to the tags userId may select.
func (s *noteTagService) tagMapper(repo contract.TagRepository, userId uuid.UUID) (*mapper.CollectionKeyMapper[*model.Tag], error) {
	var resolver mapper.EntityResolver[*model.Tag]

	if s.choiceLists != nil {
		if x, found := s.choiceLists.Get(userId.String()); found {
			resolver = x.(*memory.CachedChoiceList[*model.Tag])
		}
	}

	if resolver == nil {
		choices, err := repo.ChoiceList(
			specification.UserOwnedBy{UserID: userId},
			specification.OrderBy{Field: "name"},
		)
		if err != nil {
			return nil, err
		}
		resolver = choices

		if s.choiceLists != nil {
			cached := memory.NewCachedChoiceList[*model.Tag](choices, s.cacheTTL, s.cleanup)
			s.choiceLists.Set(userId.String(), cached, cache.DefaultExpiration)
			resolver = cached
		}
	}

	return mapper.New(resolver, mapper.WithLogger(s.logger))
}

func (s *noteTagService) forgetChoices(userId uuid.UUID) {
	if s.choiceLists != nil {
		s.choiceLists.Delete(userId.String())
	}
}

func (s *noteTagService) findNote(ctx context.Context, repo contract.NoteRepository, userId, noteId uuid.UUID) (*model.Note, error) {
	note, err := repo.FindOne(ctx,
		specification.ByID{ID: noteId},
		specification.UserOwnedBy{UserID: userId},
		specification.WithTags{},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, ErrNoteNotFound
	}
	return note, nil
}

func (s *noteTagService) GetTags(ctx context.Context, userId uuid.UUID, noteId uuid.UUID) (*dto.NoteTagsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := s.findNote(ctx, uow.NoteRepository(), userId, noteId)
	if err != nil {
		return nil, err
	}

	m, err := s.tagMapper(uow.TagRepository(), userId)
	if err != nil {
		return nil, err
	}

	return s.toResponse(ctx, m, note)
}

func (s *noteTagService) ReplaceTags(ctx context.Context, userId uuid.UUID, req *dto.ReplaceNoteTagsRequest) (*dto.NoteTagsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := s.findNote(ctx, uow.NoteRepository(), userId, req.NoteId)
	if err != nil {
		return nil, err
	}

	m, err := s.tagMapper(uow.TagRepository(), userId)
	if err != nil {
		return nil, err
	}

	selected, err := m.Decode(ctx, req.TagIds)
	observeDecode(err)
	if err != nil {
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	if err := uow.NoteRepository().ReplaceTags(ctx, note, selected.Items()); err != nil {
		uow.Rollback()
		// A cached tag may have been deleted since it was resolved.
		s.forgetChoices(userId)
		s.logger.Error(noteTagModule, "Failed to replace note tags", map[string]interface{}{
			"note_id": note.Id.String(),
			"error":   err,
		})
		return nil, fmt.Errorf("replacing tags of note %s: %w", note.Id, err)
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info(noteTagModule, "Note tags replaced", map[string]interface{}{
		"note_id": note.Id.String(),
		"count":   selected.Len(),
	})

	return s.toResponse(ctx, m, note)
}

func (s *noteTagService) toResponse(ctx context.Context, m *mapper.CollectionKeyMapper[*model.Tag], note *model.Note) (*dto.NoteTagsResponse, error) {
	keys, err := m.Encode(ctx, mapper.NewList(note.Tags...))
	if err != nil {
		return nil, err
	}

	tags := make([]dto.TagResponse, 0, len(note.Tags))
	for _, t := range note.Tags {
		tags = append(tags, dto.TagResponse{Id: t.Id, Name: t.Name})
	}

	return &dto.NoteTagsResponse{
		NoteId: note.Id,
		TagIds: keys,
		Tags:   tags,
	}, nil
}
