package services

import (
	"context"
	"log/slog"

	"github.com/yukikurage/qa-forum-api/internal/models"
	"github.com/yukikurage/qa-forum-api/internal/pagination"
	"github.com/yukikurage/qa-forum-api/internal/repository"
)

// UserService handles administrative user management.
type UserService struct {
	users repository.UserRepository
	auth  *AuthService
	log   *slog.Logger
}

func NewUserService(users repository.UserRepository, auth *AuthService, log *slog.Logger) *UserService {
	return &UserService{users: users, auth: auth, log: log}
}

// UpdateUserInput is what an administrator may change. Nil fields are left unchanged;
// a non-nil Password is re-hashed.
type UpdateUserInput struct {
	Email    *string
	Nickname *string
	Roles    *[]models.Role
	Password *string
}

func (s *UserService) GetPaginatedList(ctx context.Context, params pagination.Params) (*pagination.Page[models.User], error) {
	page, err := pagination.Paginate[models.User](s.users.QueryAll(ctx), params)
	if err != nil {
		return nil, translate(err, ErrUserNotFound, "list users")
	}
	return page, nil
}

func (s *UserService) FindOneByID(ctx context.Context, id uint64) (*models.User, error) {
	return s.auth.GetUser(ctx, id)
}

func (s *UserService) Update(ctx context.Context, user *models.User, input UpdateUserInput) (*models.User, error) {
	if input.Roles != nil {
		roles := make([]models.Role, 0, len(*input.Roles)+1)
		for _, role := range *input.Roles {
			if !role.IsValid() {
				return nil, validationError("unknown role %q", role)
			}
			roles = append(roles, role)
		}
		user.Roles = roles
		user.Roles = user.GetRoles()
	}

	updated, err := s.auth.UpdateProfile(ctx, user, ProfileInput{
		Email:    input.Email,
		Nickname: input.Nickname,
		Password: input.Password,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("user updated", slog.Uint64("user_id", updated.ID), slog.Any("roles", updated.GetRoles()))
	return updated, nil
}

// Delete removes user with their questions and answers.
func (s *UserService) Delete(ctx context.Context, user *models.User) error {
	if err := s.users.Delete(ctx, user); err != nil {
		return translate(err, ErrUserNotFound, "delete user")
	}

	s.log.Info("user deleted", slog.Uint64("user_id", user.ID))
	return nil
}
