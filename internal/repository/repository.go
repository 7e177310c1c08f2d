// Package repository is the per-entity data access layer. Finders return gorm errors
// unchanged (gorm.ErrRecordNotFound for unknown ids); Query* methods return ordered,
// unexecuted queries for the pagination package.
package repository

import (
	"context"

	"github.com/yukikurage/qa-forum-api/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// FindOneByID finds a user by ID
	FindOneByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// QueryAll returns all users ordered by id
	QueryAll(ctx context.Context) *gorm.DB

	// Save inserts or updates a user
	Save(ctx context.Context, user *models.User) error

	// Delete removes a user with their questions and answers
	Delete(ctx context.Context, user *models.User) error
}

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	FindOneByID(ctx context.Context, id uint64) (*models.Category, error)
	QueryAll(ctx context.Context) *gorm.DB
	Save(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, category *models.Category) error

	// IsInUse reports whether at least one question references the category
	IsInUse(ctx context.Context, category *models.Category) (bool, error)
}

// TagRepository defines the interface for tag data access
type TagRepository interface {
	FindOneByID(ctx context.Context, id uint64) (*models.Tag, error)

	// FindByIDs returns the tags that exist among ids, ordered by id
	FindByIDs(ctx context.Context, ids []uint64) ([]models.Tag, error)

	QueryAll(ctx context.Context) *gorm.DB
	Save(ctx context.Context, tag *models.Tag) error

	// Delete removes a tag and detaches it from every question
	Delete(ctx context.Context, tag *models.Tag) error
}

// QuestionRepository defines the interface for question data access
type QuestionRepository interface {
	// FindOneByID finds a question by ID with optional preloading
	FindOneByID(ctx context.Context, id uint64, preload ...string) (*models.Question, error)

	// QueryAll returns all questions, newest first
	QueryAll(ctx context.Context) *gorm.DB

	// QueryByCategory returns the questions of one category, newest first
	QueryByCategory(ctx context.Context, category *models.Category) *gorm.DB

	// Save inserts or updates a question and replaces its tag set with question.Tags
	Save(ctx context.Context, question *models.Question) error

	// AddTag attaches a tag; attaching an attached tag is a no-op
	AddTag(ctx context.Context, question *models.Question, tag *models.Tag) error

	// RemoveTag detaches a tag; detaching an absent tag is a no-op
	RemoveTag(ctx context.Context, question *models.Question, tag *models.Tag) error

	// Delete removes a question with its answers and tag links
	Delete(ctx context.Context, question *models.Question) error
}

// AnswerRepository defines the interface for answer data access
type AnswerRepository interface {
	// FindOneByID finds an answer by ID with optional preloading
	FindOneByID(ctx context.Context, id uint64, preload ...string) (*models.Answer, error)

	// QueryByQuestion returns the answers to a question, best answers first
	QueryByQuestion(ctx context.Context, question *models.Question) *gorm.DB

	Save(ctx context.Context, answer *models.Answer) error
	Delete(ctx context.Context, answer *models.Answer) error
}
