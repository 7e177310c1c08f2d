package repository

import (
	"context"

	"github.com/yukikurage/qa-forum-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) FindOneByID(ctx context.Context, id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepository) QueryAll(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.User{}).Order("users.id ASC")
}

func (r *GormUserRepository) Save(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// Delete removes the user's answers, every answer and tag link under the user's
// questions, the questions, and finally the user, in one transaction.
func (r *GormUserRepository) Delete(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ownQuestions := tx.Model(&models.Question{}).Select("id").Where("author_id = ?", user.ID)

		if err := tx.Where("author_id = ? OR question_id IN (?)", user.ID, ownQuestions).
			Delete(&models.Answer{}).Error; err != nil {
			return err
		}

		if err := tx.Where("question_id IN (?)", ownQuestions).Delete(&models.QuestionTag{}).Error; err != nil {
			return err
		}

		if err := tx.Where("author_id = ?", user.ID).Delete(&models.Question{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.User{}, user.ID).Error
	})
}
