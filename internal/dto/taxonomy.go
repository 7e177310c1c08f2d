package dto

import (
	"time"

	"github.com/yukikurage/qa-forum-api/internal/models"
)

// CategoryDTO represents a category in API responses
type CategoryDTO struct {
	ID        uint64    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TagDTO represents a tag in API responses
type TagDTO struct {
	ID    uint64 `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

func ToCategoryDTO(category models.Category) CategoryDTO {
	return CategoryDTO{
		ID:        category.ID,
		Title:     category.Title,
		Slug:      category.Slug,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
}

func ToTagDTO(tag models.Tag) TagDTO {
	return TagDTO{
		ID:    tag.ID,
		Title: tag.Title,
		Slug:  tag.Slug,
	}
}

func ToTagDTOs(tags []models.Tag) []TagDTO {
	dtos := make([]TagDTO, len(tags))
	for i, tag := range tags {
		dtos[i] = ToTagDTO(tag)
	}
	return dtos
}
