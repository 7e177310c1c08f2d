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

// CategoryService handles category business logic
type CategoryService struct {
	repo  repository.CategoryRepository
	cache *cache.Store
	log   *slog.Logger
}

// NewCategoryService creates a new CategoryService. store may be nil.
func NewCategoryService(repo repository.CategoryRepository, store *cache.Store, log *slog.Logger) *CategoryService {
	return &CategoryService{repo: repo, cache: store, log: log}
}

// CategoryInput is the editable part of a category.
type CategoryInput struct {
	Title string
}

func (s *CategoryService) GetPaginatedList(ctx context.Context, params pagination.Params) (*pagination.Page[models.Category], error) {
	page, err := pagination.Paginate[models.Category](s.repo.QueryAll(ctx), params)
	if err != nil {
		return nil, translate(err, ErrCategoryNotFound, "list categories")
	}
	return page, nil
}

// FindOneByID reads through the cache when one is configured.
func (s *CategoryService) FindOneByID(ctx context.Context, id uint64) (*models.Category, error) {
	return cache.Aside(ctx, s.cache, cache.CategoryKey(id), func() (*models.Category, error) {
		category, err := s.repo.FindOneByID(ctx, id)
		if err != nil {
			return nil, translate(err, ErrCategoryNotFound, "find category")
		}
		return category, nil
	})
}

// Create validates input and stores a new category with a slug derived from its title.
func (s *CategoryService) Create(ctx context.Context, input CategoryInput) (*models.Category, error) {
	title, err := requireText("title", input.Title, constants.MaxCategoryTitleLength)
	if err != nil {
		return nil, err
	}

	slug, err := utils.Slugify(title, constants.MaxCategorySlugLength)
	if err != nil {
		return nil, err
	}

	category := &models.Category{Title: title, Slug: slug}
	if err := s.Save(ctx, category); err != nil {
		return nil, err
	}

	s.log.Info("category created", slog.Uint64("category_id", category.ID))
	return category, nil
}

// Update changes the title. The slug is fixed at creation.
func (s *CategoryService) Update(ctx context.Context, category *models.Category, input CategoryInput) (*models.Category, error) {
	title, err := requireText("title", input.Title, constants.MaxCategoryTitleLength)
	if err != nil {
		return nil, err
	}

	category.Title = title
	if err := s.Save(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Save(ctx context.Context, category *models.Category) error {
	if err := s.repo.Save(ctx, category); err != nil {
		return translate(err, ErrCategoryNotFound, "save category")
	}
	s.invalidate(ctx, category.ID)
	return nil
}

// CanBeDeleted reports whether no question references category.
func (s *CategoryService) CanBeDeleted(ctx context.Context, category *models.Category) (bool, error) {
	inUse, err := s.repo.IsInUse(ctx, category)
	if err != nil {
		return false, translate(err, ErrCategoryNotFound, "check category usage")
	}
	return !inUse, nil
}

// Delete refuses with ErrCategoryInUse while any question references category.
func (s *CategoryService) Delete(ctx context.Context, category *models.Category) error {
	ok, err := s.CanBeDeleted(ctx, category)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCategoryInUse
	}

	if err := s.repo.Delete(ctx, category); err != nil {
		return translate(err, ErrCategoryNotFound, "delete category")
	}
	s.invalidate(ctx, category.ID)

	s.log.Info("category deleted", slog.Uint64("category_id", category.ID))
	return nil
}

func (s *CategoryService) invalidate(ctx context.Context, id uint64) {
	if err := s.cache.Invalidate(ctx, cache.CategoryKey(id)); err != nil {
		s.log.Warn("cache invalidation failed", slog.String("key", cache.CategoryKey(id)), slog.Any("error", err))
	}
}
