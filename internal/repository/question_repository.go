package repository

import (
	"context"

	"github.com/yukikurage/qa-forum-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormQuestionRepository is a GORM implementation of QuestionRepository
type GormQuestionRepository struct {
	db *gorm.DB
}

// NewQuestionRepository creates a new QuestionRepository
func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &GormQuestionRepository{db: db}
}

// FindOneByID finds a question by ID with optional preloading
func (r *GormQuestionRepository) FindOneByID(ctx context.Context, id uint64, preload ...string) (*models.Question, error) {
	var question models.Question
	query := r.db.WithContext(ctx)

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&question, id).Error; err != nil {
		return nil, err
	}

	return &question, nil
}

func (r *GormQuestionRepository) QueryAll(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Question{}).
		Order("questions.created_at DESC").
		Order("questions.id DESC")
}

func (r *GormQuestionRepository) QueryByCategory(ctx context.Context, category *models.Category) *gorm.DB {
	return r.QueryAll(ctx).Where("questions.category_id = ?", category.ID)
}

// Save writes the question row and then makes its join rows match question.Tags.
func (r *GormQuestionRepository) Save(ctx context.Context, question *models.Question) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(question).Error; err != nil {
			return err
		}

		if err := tx.Where("question_id = ?", question.ID).Delete(&models.QuestionTag{}).Error; err != nil {
			return err
		}

		if len(question.Tags) == 0 {
			return nil
		}

		links := make([]models.QuestionTag, len(question.Tags))
		for i, tag := range question.Tags {
			links[i] = models.QuestionTag{QuestionID: question.ID, TagID: tag.ID}
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error
	})
}

func (r *GormQuestionRepository) AddTag(ctx context.Context, question *models.Question, tag *models.Tag) error {
	link := models.QuestionTag{QuestionID: question.ID, TagID: tag.ID}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error; err != nil {
		return err
	}
	question.AddTag(*tag)
	return nil
}

func (r *GormQuestionRepository) RemoveTag(ctx context.Context, question *models.Question, tag *models.Tag) error {
	if err := r.db.WithContext(ctx).
		Where("question_id = ? AND tag_id = ?", question.ID, tag.ID).
		Delete(&models.QuestionTag{}).Error; err != nil {
		return err
	}
	question.RemoveTag(tag.ID)
	return nil
}

// Delete removes a question and all related data in a transaction
func (r *GormQuestionRepository) Delete(ctx context.Context, question *models.Question) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", question.ID).Delete(&models.Answer{}).Error; err != nil {
			return err
		}

		if err := tx.Where("question_id = ?", question.ID).Delete(&models.QuestionTag{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Question{}, question.ID).Error
	})
}
