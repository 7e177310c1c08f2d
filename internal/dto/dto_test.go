package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/qa-forum-api/internal/models"
	"github.com/yukikurage/qa-forum-api/internal/pagination"
)

func TestToUserDTO_ImpliesRoleUser(t *testing.T) {
	dto := ToUserDTO(models.User{ID: 1, Email: "a@example.com", Roles: []models.Role{models.RoleAdmin}})

	assert.ElementsMatch(t, []models.Role{models.RoleAdmin, models.RoleUser}, dto.Roles)
	assert.True(t, dto.IsAdmin)
}

func TestToQuestionDTO(t *testing.T) {
	authorID := uint64(5)
	question := models.Question{
		ID:         1,
		Title:      "Q",
		CategoryID: 2,
		AuthorID:   &authorID,
		Author:     &models.User{ID: 5, Nickname: "nick", Email: "hidden@example.com"},
		Category:   &models.Category{ID: 2, Title: "General"},
		Tags:       []models.Tag{{ID: 3, Title: "go", Slug: "go"}},
	}

	dto := ToQuestionDTO(question)

	require.NotNil(t, dto.Category)
	assert.Equal(t, "General", dto.Category.Title)
	require.NotNil(t, dto.Author)
	assert.Equal(t, "nick", dto.Author.Nickname)
	assert.Equal(t, []TagDTO{{ID: 3, Title: "go", Slug: "go"}}, dto.Tags)
}

func TestToQuestionDTO_Anonymous(t *testing.T) {
	dto := ToQuestionDTO(models.Question{ID: 1})

	assert.Nil(t, dto.Author)
	assert.Nil(t, dto.Category)
	assert.NotNil(t, dto.Tags)
}

func TestToListResponse(t *testing.T) {
	page := &pagination.Page[models.Tag]{
		Items:      []models.Tag{{ID: 1, Title: "a"}, {ID: 2, Title: "b"}},
		Page:       2,
		PageSize:   2,
		TotalCount: 5,
		TotalPages: 3,
	}

	resp := ToListResponse(page, ToTagDTO)

	assert.Equal(t, 2, resp.ItemCount)
	assert.Equal(t, 3, resp.TotalPages)
	assert.EqualValues(t, 5, resp.TotalCount)
	assert.Equal(t, "b", resp.Items[1].Title)
}
