package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/blog-service/internal/auth"
	"github.com/spec-kit/blog-service/internal/domain"
	"github.com/spec-kit/blog-service/internal/repository"
	apperrors "github.com/spec-kit/blog-service/pkg/util"
)

// UserUpdateInput carries updatable account fields. Role is absent on
// purpose: the API offers no elevation path.
type UserUpdateInput struct {
	Username string
	Email    string
	Password string
}

// UserService implements account reads and self-service mutations. A user
// owns their own record; the author role may act on any account.
type UserService struct {
	users      repository.UserRepository
	bcryptCost int
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, bcryptCost int) *UserService {
	return &UserService{users: users, bcryptCost: bcryptCost}
}

// ListUsers returns all accounts.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// GetUser loads one account by ID.
func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}
	return user, nil
}

// UpdateUser mutates an account after existence and ownership clear, in
// that order. The target user's own ID is the owner reference.
func (s *UserService) UpdateUser(ctx context.Context, identity *auth.Identity, id string, input UserUpdateInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}
	if err := auth.CheckOwnership(identity, "account", user.ID, domain.RoleAuthor); err != nil {
		return nil, err
	}

	if input.Username != "" {
		user.Username = input.Username
	}
	if input.Email != "" {
		user.Email = input.Email
	}
	if input.Password != "" {
		hash, err := auth.HashPassword(input.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if err := s.users.Update(ctx, user); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}
	return user, nil
}

// DeleteUser removes an account after existence and ownership clear.
func (s *UserService) DeleteUser(ctx context.Context, identity *auth.Identity, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}
	if err := auth.CheckOwnership(identity, "account", user.ID, domain.RoleAuthor); err != nil {
		return nil, err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}
	return user, nil
}
