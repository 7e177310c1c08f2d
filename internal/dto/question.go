package dto

import (
	"time"

	"github.com/yukikurage/qa-forum-api/internal/models"
	"github.com/yukikurage/qa-forum-api/internal/pagination"
)

// QuestionDTO represents a question in API responses
type QuestionDTO struct {
	ID         uint64       `json:"id"`
	Title      string       `json:"title"`
	Body       string       `json:"body"`
	Image      *string      `json:"image"`
	CategoryID uint64       `json:"category_id"`
	Category   *CategoryDTO `json:"category,omitempty"`
	AuthorID   *uint64      `json:"author_id"`
	Author     *AuthorDTO   `json:"author,omitempty"`
	Tags       []TagDTO     `json:"tags"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// AnswerDTO represents an answer in API responses
type AnswerDTO struct {
	ID           uint64     `json:"id"`
	Body         string     `json:"body"`
	Image        *string    `json:"image"`
	QuestionID   uint64     `json:"question_id"`
	AuthorID     *uint64    `json:"author_id"`
	Author       *AuthorDTO `json:"author,omitempty"`
	IsBestAnswer bool       `json:"is_best_answer"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// QuestionDetailResponse is a question with one page of its answers.
type QuestionDetailResponse struct {
	Question QuestionDTO             `json:"question"`
	Answers  ListResponse[AnswerDTO] `json:"answers"`
}

// ToQuestionDTO converts a Question model to QuestionDTO
func ToQuestionDTO(question models.Question) QuestionDTO {
	dto := QuestionDTO{
		ID:         question.ID,
		Title:      question.Title,
		Body:       question.Body,
		Image:      question.Image,
		CategoryID: question.CategoryID,
		AuthorID:   question.AuthorID,
		Author:     ToAuthorDTO(question.Author),
		Tags:       ToTagDTOs(question.Tags),
		CreatedAt:  question.CreatedAt,
		UpdatedAt:  question.UpdatedAt,
	}

	// Include category if preloaded
	if question.Category != nil {
		category := ToCategoryDTO(*question.Category)
		dto.Category = &category
	}

	return dto
}

// ToAnswerDTO converts an Answer model to AnswerDTO
func ToAnswerDTO(answer models.Answer) AnswerDTO {
	return AnswerDTO{
		ID:           answer.ID,
		Body:         answer.Body,
		Image:        answer.Image,
		QuestionID:   answer.QuestionID,
		AuthorID:     answer.AuthorID,
		Author:       ToAuthorDTO(answer.Author),
		IsBestAnswer: answer.IsBestAnswer,
		CreatedAt:    answer.CreatedAt,
		UpdatedAt:    answer.UpdatedAt,
	}
}

func ToQuestionDetailResponse(question models.Question, answers *pagination.Page[models.Answer]) QuestionDetailResponse {
	return QuestionDetailResponse{
		Question: ToQuestionDTO(question),
		Answers:  ToListResponse(answers, ToAnswerDTO),
	}
}
