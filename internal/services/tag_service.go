package services

import (
	"context"
	"log/slog"

	"github.com/yukikurage/qa-forum-api/internal/cache"
	"github.com/yukikurage/qa-forum-api/internal/constants"
	"github.com/yukikurage/qa-forum-api/internal/models"
	"github.com/yukikurage/qa-forum-api/internal/pagination"
	"github.com/yukikurage/qa-forum-api/internal/repository"
	"github.com/yukikurage/qa-forum-api/internal/utils"
)

// TagService handles tag business logic
type TagService struct {
	repo  repository.TagRepository
	cache *cache.Store
	log   *slog.Logger
}

// NewTagService creates a new TagService. store may be nil.
func NewTagService(repo repository.TagRepository, store *cache.Store, log *slog.Logger) *TagService {
	return &TagService{repo: repo, cache: store, log: log}
}

type TagInput struct {
	Title string
}

func (s *TagService) GetPaginatedList(ctx context.Context, params pagination.Params) (*pagination.Page[models.Tag], error) {
	page, err := pagination.Paginate[models.Tag](s.repo.QueryAll(ctx), params)
	if err != nil {
		return nil, translate(err, ErrTagNotFound, "list tags")
	}
	return page, nil
}

func (s *TagService) FindOneByID(ctx context.Context, id uint64) (*models.Tag, error) {
	return cache.Aside(ctx, s.cache, cache.TagKey(id), func() (*models.Tag, error) {
		tag, err := s.repo.FindOneByID(ctx, id)
		if err != nil {
			return nil, translate(err, ErrTagNotFound, "find tag")
		}
		return tag, nil
	})
}

func (s *TagService) Create(ctx context.Context, input TagInput) (*models.Tag, error) {
	title, err := requireText("title", input.Title, constants.MaxTagTitleLength)
	if err != nil {
		return nil, err
	}

	slug, err := utils.Slugify(title, constants.MaxTagSlugLength)
	if err != nil {
		return nil, err
	}

	tag := &models.Tag{Title: title, Slug: slug}
	if err := s.Save(ctx, tag); err != nil {
		return nil, err
	}

	s.log.Info("tag created", slog.Uint64("tag_id", tag.ID))
	return tag, nil
}

func (s *TagService) Update(ctx context.Context, tag *models.Tag, input TagInput) (*models.Tag, error) {
	title, err := requireText("title", input.Title, constants.MaxTagTitleLength)
	if err != nil {
		return nil, err
	}

	tag.Title = title
	if err := s.Save(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *TagService) Save(ctx context.Context, tag *models.Tag) error {
	if err := s.repo.Save(ctx, tag); err != nil {
		return translate(err, ErrTagNotFound, "save tag")
	}
	s.invalidate(ctx, tag.ID)
	return nil
}

// Delete removes tag and detaches it from its questions.
func (s *TagService) Delete(ctx context.Context, tag *models.Tag) error {
	if err := s.repo.Delete(ctx, tag); err != nil {
		return translate(err, ErrTagNotFound, "delete tag")
	}
	s.invalidate(ctx, tag.ID)

	s.log.Info("tag deleted", slog.Uint64("tag_id", tag.ID))
	return nil
}

// ResolveIDs loads the tags for ids. Any unknown id is a validation error.
func (s *TagService) ResolveIDs(ctx context.Context, ids []uint64) ([]models.Tag, error) {
	return resolveTags(ctx, s.repo, ids)
}

func resolveTags(ctx context.Context, repo repository.TagRepository, ids []uint64) ([]models.Tag, error) {
	unique := make([]uint64, 0, len(ids))
	seen := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	tags, err := repo.FindByIDs(ctx, unique)
	if err != nil {
		return nil, translate(err, ErrTagNotFound, "find tags")
	}
	if len(tags) != len(unique) {
		return nil, validationError("one or more tags do not exist")
	}
	return tags, nil
}

// All returns every tag in id order.
func (s *TagService) All(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	if err := s.repo.QueryAll(ctx).Find(&tags).Error; err != nil {
		return nil, translate(err, ErrTagNotFound, "list tags")
	}
	return tags, nil
}

func (s *TagService) invalidate(ctx context.Context, id uint64) {
	if err := s.cache.Invalidate(ctx, cache.TagKey(id)); err != nil {
		s.log.Warn("cache invalidation failed", slog.String("key", cache.TagKey(id)), slog.Any("error", err))
	}
}
