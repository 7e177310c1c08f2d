package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/yukikurage/qa-forum-api/internal/constants"
	"github.com/yukikurage/qa-forum-api/internal/models"
	"github.com/yukikurage/qa-forum-api/internal/pagination"
	"github.com/yukikurage/qa-forum-api/internal/repository"
	"gorm.io/gorm"
)

// Relations loaded with every question that leaves the service.
var questionPreloads = []string{"Category", "Author", "Tags"}

// QuestionService handles question business logic
type QuestionService struct {
	questions  repository.QuestionRepository
	categories repository.CategoryRepository
	tags       repository.TagRepository
	suggester  *TagSuggester
	log        *slog.Logger
}

// NewQuestionService creates a new QuestionService. suggester may be nil.
func NewQuestionService(
	questions repository.QuestionRepository,
	categories repository.CategoryRepository,
	tags repository.TagRepository,
	suggester *TagSuggester,
	log *slog.Logger,
) *QuestionService {
	return &QuestionService{
		questions:  questions,
		categories: categories,
		tags:       tags,
		suggester:  suggester,
		log:        log,
	}
}

// CreateQuestionInput represents input for creating a question
type CreateQuestionInput struct {
	Title      string
	Body       string
	Image      *string
	CategoryID uint64
	TagIDs     []uint64
}

// UpdateQuestionInput represents input for updating a question. Nil fields are left unchanged.
type UpdateQuestionInput struct {
	Title      *string
	Body       *string
	Image      *string
	ClearImage bool
	CategoryID *uint64
	TagIDs     *[]uint64
}

func (s *QuestionService) GetPaginatedList(ctx context.Context, params pagination.Params) (*pagination.Page[models.Question], error) {
	return s.paginate(s.questions.QueryAll(ctx), params)
}

func (s *QuestionService) GetPaginatedListByCategory(ctx context.Context, category *models.Category, params pagination.Params) (*pagination.Page[models.Question], error) {
	return s.paginate(s.questions.QueryByCategory(ctx, category), params)
}

func (s *QuestionService) paginate(query *gorm.DB, params pagination.Params) (*pagination.Page[models.Question], error) {
	page, err := pagination.Paginate[models.Question](query, params, questionPreloads...)
	if err != nil {
		return nil, translate(err, ErrQuestionNotFound, "list questions")
	}
	return page, nil
}

// FindOneByID returns a question with its category, author and tags.
func (s *QuestionService) FindOneByID(ctx context.Context, id uint64) (*models.Question, error) {
	question, err := s.questions.FindOneByID(ctx, id, questionPreloads...)
	if err != nil {
		return nil, translate(err, ErrQuestionNotFound, "find question")
	}
	return question, nil
}

// Create stores a question authored by actor; a nil actor posts anonymously.
func (s *QuestionService) Create(ctx context.Context, actor *models.User, input CreateQuestionInput) (*models.Question, error) {
	question := &models.Question{}
	if actor != nil {
		question.AuthorID = &actor.ID
	}

	update := UpdateQuestionInput{
		Title:      &input.Title,
		Body:       &input.Body,
		Image:      input.Image,
		CategoryID: &input.CategoryID,
		TagIDs:     &input.TagIDs,
	}
	if err := s.apply(ctx, question, update); err != nil {
		return nil, err
	}

	if err := s.Save(ctx, question); err != nil {
		return nil, err
	}

	s.log.Info("question created", slog.Uint64("question_id", question.ID))
	return s.FindOneByID(ctx, question.ID)
}

func (s *QuestionService) Update(ctx context.Context, question *models.Question, input UpdateQuestionInput) (*models.Question, error) {
	if err := s.apply(ctx, question, input); err != nil {
		return nil, err
	}

	if err := s.Save(ctx, question); err != nil {
		return nil, err
	}

	return s.FindOneByID(ctx, question.ID)
}

// apply validates input and copies it onto question without persisting.
func (s *QuestionService) apply(ctx context.Context, question *models.Question, input UpdateQuestionInput) error {
	if input.Title != nil {
		title, err := requireText("title", *input.Title, constants.MaxQuestionTitleLength)
		if err != nil {
			return err
		}
		question.Title = title
	}

	if input.Body != nil {
		body, err := requireText("body", *input.Body, constants.MaxCommentLength)
		if err != nil {
			return err
		}
		question.Body = body
	}

	if input.ClearImage {
		question.Image = nil
	} else if input.Image != nil {
		image, err := optionalImage(input.Image)
		if err != nil {
			return err
		}
		question.Image = image
	}

	if input.CategoryID != nil {
		category, err := s.categories.FindOneByID(ctx, *input.CategoryID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return validationError("category does not exist")
			}
			return translate(err, ErrCategoryNotFound, "find category")
		}
		question.CategoryID = category.ID
		question.Category = category
	}

	if input.TagIDs != nil {
		tags, err := resolveTags(ctx, s.tags, *input.TagIDs)
		if err != nil {
			return err
		}
		question.Tags = tags
	}

	return nil
}

// Save persists question and replaces its stored tag set with question.Tags, so
// question must have been loaded with its tags.
func (s *QuestionService) Save(ctx context.Context, question *models.Question) error {
	if question.CategoryID == 0 {
		return validationError("category is required")
	}
	if err := s.questions.Save(ctx, question); err != nil {
		return translate(err, ErrQuestionNotFound, "save question")
	}
	return nil
}

// AddTag attaches the tag with tagID; attaching it twice is a no-op.
func (s *QuestionService) AddTag(ctx context.Context, question *models.Question, tagID uint64) (*models.Question, error) {
	tag, err := s.tags.FindOneByID(ctx, tagID)
	if err != nil {
		return nil, translate(err, ErrTagNotFound, "find tag")
	}

	if err := s.questions.AddTag(ctx, question, tag); err != nil {
		return nil, translate(err, ErrQuestionNotFound, "add tag")
	}
	return question, nil
}

// RemoveTag detaches the tag with tagID; detaching an absent tag is a no-op.
func (s *QuestionService) RemoveTag(ctx context.Context, question *models.Question, tagID uint64) (*models.Question, error) {
	tag, err := s.tags.FindOneByID(ctx, tagID)
	if err != nil {
		return nil, translate(err, ErrTagNotFound, "find tag")
	}

	if err := s.questions.RemoveTag(ctx, question, tag); err != nil {
		return nil, translate(err, ErrQuestionNotFound, "remove tag")
	}
	return question, nil
}

// Delete removes question together with its answers.
func (s *QuestionService) Delete(ctx context.Context, question *models.Question) error {
	if err := s.questions.Delete(ctx, question); err != nil {
		return translate(err, ErrQuestionNotFound, "delete question")
	}

	s.log.Info("question deleted", slog.Uint64("question_id", question.ID))
	return nil
}

// SuggestTags ranks existing tags for question. It does not attach them.
func (s *QuestionService) SuggestTags(ctx context.Context, question *models.Question) ([]models.Tag, error) {
	if s.suggester == nil {
		return nil, ErrTagSuggesterUnavailable
	}

	var candidates []models.Tag
	if err := s.tags.QueryAll(ctx).Find(&candidates).Error; err != nil {
		return nil, translate(err, ErrTagNotFound, "list tags")
	}

	suggested, err := s.suggester.Suggest(ctx, question, candidates)
	if err != nil {
		s.log.Error("tag suggestion failed", slog.Uint64("question_id", question.ID), slog.Any("error", err))
		return nil, err
	}
	return suggested, nil
}
