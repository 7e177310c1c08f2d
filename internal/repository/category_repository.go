package repository

import (
	"context"

	"github.com/yukikurage/qa-forum-api/internal/models"
	"gorm.io/gorm"
)

// GormCategoryRepository is a GORM implementation of CategoryRepository
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &GormCategoryRepository{db: db}
}

func (r *GormCategoryRepository) FindOneByID(ctx context.Context, id uint64) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *GormCategoryRepository) QueryAll(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Category{}).Order("categories.id ASC")
}

func (r *GormCategoryRepository) Save(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

// Delete removes the category row only. Callers check IsInUse first; a category
// that is still referenced fails on the questions foreign key.
func (r *GormCategoryRepository) Delete(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Delete(&models.Category{}, category.ID).Error
}

func (r *GormCategoryRepository) IsInUse(ctx context.Context, category *models.Category) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Question{}).
		Where("category_id = ?", category.ID).
		Count(&count).Error
	return count > 0, err
}
