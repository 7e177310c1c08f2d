package repository

import (
	"context"

	"github.com/yukikurage/qa-forum-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAnswerRepository is a GORM implementation of AnswerRepository
type GormAnswerRepository struct {
	db *gorm.DB
}

// NewAnswerRepository creates a new AnswerRepository
func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &GormAnswerRepository{db: db}
}

// FindOneByID finds an answer by ID with optional preloading
func (r *GormAnswerRepository) FindOneByID(ctx context.Context, id uint64, preload ...string) (*models.Answer, error) {
	var answer models.Answer
	query := r.db.WithContext(ctx)

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&answer, id).Error; err != nil {
		return nil, err
	}

	return &answer, nil
}

func (r *GormAnswerRepository) QueryByQuestion(ctx context.Context, question *models.Question) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Answer{}).
		Where("answers.question_id = ?", question.ID).
		Order("answers.best_answer DESC").
		Order("answers.created_at ASC").
		Order("answers.id ASC")
}

func (r *GormAnswerRepository) Save(ctx context.Context, answer *models.Answer) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(answer).Error
}

func (r *GormAnswerRepository) Delete(ctx context.Context, answer *models.Answer) error {
	return r.db.WithContext(ctx).Delete(&models.Answer{}, answer.ID).Error
}
