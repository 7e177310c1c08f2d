package services

import (
	"context"
	"log/slog"

	"github.com/yukikurage/qa-forum-api/internal/constants"
	"github.com/yukikurage/qa-forum-api/internal/models"
	"github.com/yukikurage/qa-forum-api/internal/pagination"
	"github.com/yukikurage/qa-forum-api/internal/repository"
)

var answerPreloads = []string{"Question", "Author"}

// AnswerService handles answer business logic
type AnswerService struct {
	answers repository.AnswerRepository
	log     *slog.Logger
}

// NewAnswerService creates a new AnswerService
func NewAnswerService(answers repository.AnswerRepository, log *slog.Logger) *AnswerService {
	return &AnswerService{answers: answers, log: log}
}

type AnswerInput struct {
	Body  string
	Image *string
}

// GetPaginatedListByQuestion lists the answers to question, best answers first.
func (s *AnswerService) GetPaginatedListByQuestion(ctx context.Context, question *models.Question, params pagination.Params) (*pagination.Page[models.Answer], error) {
	page, err := pagination.Paginate[models.Answer](s.answers.QueryByQuestion(ctx, question), params, "Author")
	if err != nil {
		return nil, translate(err, ErrAnswerNotFound, "list answers")
	}
	return page, nil
}

// FindOneByID returns an answer with its question and author loaded.
func (s *AnswerService) FindOneByID(ctx context.Context, id uint64) (*models.Answer, error) {
	answer, err := s.answers.FindOneByID(ctx, id, answerPreloads...)
	if err != nil {
		return nil, translate(err, ErrAnswerNotFound, "find answer")
	}
	return answer, nil
}

// Create answers question on behalf of actor; a nil actor answers anonymously.
func (s *AnswerService) Create(ctx context.Context, actor *models.User, question *models.Question, input AnswerInput) (*models.Answer, error) {
	answer := &models.Answer{
		QuestionID: question.ID,
		Question:   question,
	}
	if actor != nil {
		answer.AuthorID = &actor.ID
		answer.Author = actor
	}

	if err := applyAnswerInput(answer, input); err != nil {
		return nil, err
	}

	if err := s.Save(ctx, answer); err != nil {
		return nil, err
	}

	s.log.Info("answer created", slog.Uint64("answer_id", answer.ID), slog.Uint64("question_id", question.ID))
	return answer, nil
}

func (s *AnswerService) Update(ctx context.Context, answer *models.Answer, input AnswerInput) (*models.Answer, error) {
	if err := applyAnswerInput(answer, input); err != nil {
		return nil, err
	}

	if err := s.Save(ctx, answer); err != nil {
		return nil, err
	}
	return answer, nil
}

func applyAnswerInput(answer *models.Answer, input AnswerInput) error {
	body, err := requireText("body", input.Body, constants.MaxCommentLength)
	if err != nil {
		return err
	}

	image, err := optionalImage(input.Image)
	if err != nil {
		return err
	}

	answer.Body = body
	answer.Image = image
	return nil
}

func (s *AnswerService) Save(ctx context.Context, answer *models.Answer) error {
	if err := s.answers.Save(ctx, answer); err != nil {
		return translate(err, ErrAnswerNotFound, "save answer")
	}
	return nil
}

func (s *AnswerService) Delete(ctx context.Context, answer *models.Answer) error {
	if err := s.answers.Delete(ctx, answer); err != nil {
		return translate(err, ErrAnswerNotFound, "delete answer")
	}

	s.log.Info("answer deleted", slog.Uint64("answer_id", answer.ID))
	return nil
}

// Award flags answer as a best answer. Other answers to the same question keep
// their flags; a question may have several best answers.
func (s *AnswerService) Award(ctx context.Context, answer *models.Answer) (*models.Answer, error) {
	return s.setBest(ctx, answer, true)
}

// Deaward clears the best answer flag.
func (s *AnswerService) Deaward(ctx context.Context, answer *models.Answer) (*models.Answer, error) {
	return s.setBest(ctx, answer, false)
}

func (s *AnswerService) setBest(ctx context.Context, answer *models.Answer, best bool) (*models.Answer, error) {
	answer.IsBestAnswer = best
	if err := s.Save(ctx, answer); err != nil {
		return nil, err
	}

	if best {
		s.log.Info("answer awarded", slog.Uint64("answer_id", answer.ID))
	} else {
		s.log.Info("answer deawarded", slog.Uint64("answer_id", answer.ID))
	}
	return answer, nil
}
