package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/yukikurage/qa-forum-api/internal/constants"
	"github.com/yukikurage/qa-forum-api/internal/models"
	"github.com/yukikurage/qa-forum-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrFailedToHashPassword = errors.New("failed to hash password")

// AuthService handles authentication related business logic.
type AuthService struct {
	userRepo repository.UserRepository
	log      *slog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, log *slog.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		log:      log,
	}
}

// SignupInput represents the required information to create a new user.
type SignupInput struct {
	Email    string
	Nickname string
	Password string
}

// Signup registers a regular user.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*models.User, error) {
	return s.register(ctx, input, []models.Role{models.RoleUser})
}

// CreateAdmin registers a user holding ROLE_ADMIN.
func (s *AuthService) CreateAdmin(ctx context.Context, input SignupInput) (*models.User, error) {
	return s.register(ctx, input, []models.Role{models.RoleUser, models.RoleAdmin})
}

func (s *AuthService) register(ctx context.Context, input SignupInput, roles []models.Role) (*models.User, error) {
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	nickname, err := requireText("nickname", input.Nickname, constants.MaxNicknameLength)
	if err != nil {
		return nil, err
	}
	if err := checkPassword(input.Password); err != nil {
		return nil, err
	}

	if err := s.ensureEmailAvailable(ctx, email, 0); err != nil {
		return nil, err
	}

	hashedPassword, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		Nickname:     nickname,
		PasswordHash: hashedPassword,
		Roles:        roles,
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, translate(err, ErrUserNotFound, "create user")
	}

	s.log.Info("user registered", slog.Uint64("user_id", user.ID), slog.Any("roles", user.GetRoles()))
	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and returns the authenticated user.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, translate(err, ErrUserNotFound, "find user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(ctx context.Context, id uint64) (*models.User, error) {
	user, err := s.userRepo.FindOneByID(ctx, id)
	if err != nil {
		return nil, translate(err, ErrUserNotFound, "find user")
	}
	return user, nil
}

// ProfileInput holds self-service profile changes. Nil fields are left unchanged.
type ProfileInput struct {
	Email    *string
	Nickname *string
	Password *string
}

// UpdateProfile lets a user change their own email, nickname or password.
func (s *AuthService) UpdateProfile(ctx context.Context, user *models.User, input ProfileInput) (*models.User, error) {
	if err := s.applyProfile(ctx, user, input); err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, translate(err, ErrUserNotFound, "update user")
	}
	return user, nil
}

func (s *AuthService) applyProfile(ctx context.Context, user *models.User, input ProfileInput) error {
	if input.Email != nil {
		email, err := normalizeEmail(*input.Email)
		if err != nil {
			return err
		}
		if email != user.Email {
			if err := s.ensureEmailAvailable(ctx, email, user.ID); err != nil {
				return err
			}
		}
		user.Email = email
	}

	if input.Nickname != nil {
		nickname, err := requireText("nickname", *input.Nickname, constants.MaxNicknameLength)
		if err != nil {
			return err
		}
		user.Nickname = nickname
	}

	if input.Password != nil {
		if err := checkPassword(*input.Password); err != nil {
			return err
		}
		hashed, err := hashPassword(*input.Password)
		if err != nil {
			return err
		}
		user.PasswordHash = hashed
	}

	return nil
}

// ensureEmailAvailable fails with ErrEmailTaken when another user than selfID owns email.
func (s *AuthService) ensureEmailAvailable(ctx context.Context, email string, selfID uint64) error {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		if existing.ID == selfID {
			return nil
		}
		return ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: failed to check email: %w", ErrStorage, err)
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFailedToHashPassword, err)
	}
	return string(hashed), nil
}
