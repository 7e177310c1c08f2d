package dto

import (
	"time"

	"github.com/yukikurage/qa-forum-api/internal/models"
)

// AuthorDTO is the public view of a user attached to questions and answers.
type AuthorDTO struct {
	ID       uint64 `json:"id"`
	Nickname string `json:"nickname"`
}

// UserDTO represents a user in API responses
type UserDTO struct {
	ID        uint64        `json:"id"`
	Email     string        `json:"email"`
	Nickname  string        `json:"nickname"`
	Roles     []models.Role `json:"roles"`
	IsAdmin   bool          `json:"is_admin"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func ToAuthorDTO(user *models.User) *AuthorDTO {
	if user == nil {
		return nil
	}
	return &AuthorDTO{ID: user.ID, Nickname: user.Nickname}
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Email:     user.Email,
		Nickname:  user.Nickname,
		Roles:     user.GetRoles(),
		IsAdmin:   user.IsAdmin(),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
