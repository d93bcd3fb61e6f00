package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/unlockedcoding/backend/internal/model"
	"github.com/unlockedcoding/backend/internal/repository"
	"github.com/unlockedcoding/backend/internal/session"
	"github.com/unlockedcoding/backend/pkg/apperror"
	"github.com/unlockedcoding/backend/pkg/password"
)

// RegisterInput deliberately has no admin field: the public registration path
// always produces a non-privileged identity. Admin rights are granted only
// through the adminctl operator command.
type RegisterInput struct {
	Username string  `json:"username" binding:"required,min=3,max=50"`
	Password string  `json:"password" binding:"required,min=6"`
	Email    *string `json:"email" binding:"omitempty,email"`
}

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthService interface {
	// Register creates the user and opens a session, returning the opaque
	// session token alongside the sanitized user.
	Register(ctx context.Context, input RegisterInput) (*model.User, string, error)
	Login(ctx context.Context, input LoginInput) (*model.User, string, error)
	Logout(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, id uuid.UUID) (*model.User, error)
}

type authService struct {
	users      repository.UserRepository
	sessions   session.Store
	sessionTTL time.Duration
}

func NewAuthService(users repository.UserRepository, sessions session.Store, sessionTTL time.Duration) AuthService {
	return &authService{
		users:      users,
		sessions:   sessions,
		sessionTTL: sessionTTL,
	}
}

var errInvalidCredentials = apperror.New(http.StatusUnauthorized, "invalid credentials", apperror.ErrUnauthorized)

func (s *authService) Register(ctx context.Context, input RegisterInput) (*model.User, string, error) {
	username := strings.TrimSpace(input.Username)

	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, "", apperror.Conflict("username already taken")
	} else if !errors.Is(err, apperror.ErrNotFound) {
		return nil, "", err
	}

	hash, err := password.Hash(input.Password)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hash,
		Email:        input.Email,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.sessions.Create(ctx, user.ID, s.sessionTTL)
	if err != nil {
		return nil, "", err
	}

	user.PasswordHash = ""
	return user, token, nil
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*model.User, string, error) {
	user, err := s.users.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, "", errInvalidCredentials
		}
		return nil, "", err
	}

	ok, err := password.Verify(input.Password, user.PasswordHash)
	if err != nil {
		// A hash we cannot parse is corrupt state, not a bad login.
		return nil, "", err
	}
	if !ok {
		return nil, "", errInvalidCredentials
	}

	token, err := s.sessions.Create(ctx, user.ID, s.sessionTTL)
	if err != nil {
		return nil, "", err
	}

	user.PasswordHash = ""
	return user, token, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	return s.sessions.Destroy(ctx, token)
}

func (s *authService) CurrentUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}
