package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/blog-service/internal/auth"
	"github.com/spec-kit/blog-service/internal/config"
	"github.com/spec-kit/blog-service/internal/domain"
	"github.com/spec-kit/blog-service/internal/events"
	"github.com/spec-kit/blog-service/internal/repository"
	apperrors "github.com/spec-kit/blog-service/pkg/util"
)

// AuthService coordinates registration and login flows. Passwords are only
// touched here; the per-request gates never see them.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository, dispatcher events.Dispatcher) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL()),
		dispatcher: dispatcher,
		bcryptCost: cfg.BcryptCost,
	}
}

// RegisterUser creates a new account with the default viewer role and
// issues its first token.
func (s *AuthService) RegisterUser(ctx context.Context, username, email, password string) (*domain.User, string, time.Time, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict("email already in use", nil)
	} else if err != pgx.ErrNoRows {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleViewer,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.Generate(user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	s.publish(ctx, user, events.EventUserRegistered, events.UserRegisteredPayload{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
	return user, token, exp, nil
}

// LoginUser authenticates by email and password. Unknown email and wrong
// password fail identically.
func (s *AuthService) LoginUser(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", time.Time{}, apperrors.NewInvalidCredential("invalid email or password")
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewInvalidCredential("invalid email or password")
	}
	token, exp, err := s.tokenMgr.Generate(user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) publish(ctx context.Context, user *domain.User, eventType events.EventType, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.NewEvent(eventType,
		events.Actor{UserID: user.ID, Role: user.Role}, payload))
}
