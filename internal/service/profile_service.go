package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/unlockedcoding/backend/internal/model"
	"github.com/unlockedcoding/backend/internal/repository"
	"github.com/unlockedcoding/backend/pkg/apperror"
)

type ProfileInput struct {
	FullName  string  `json:"full_name" binding:"required,min=2,max=100"`
	Bio       *string `json:"bio"`
	Interest  *string `json:"interest"`
	AvatarURL *string `json:"avatar_url" binding:"omitempty,url"`
}

type ProfileService interface {
	Get(ctx context.Context, userID uuid.UUID) (*model.Profile, error)
	// Upsert creates or replaces the profile and marks the user's profile as
	// completed.
	Upsert(ctx context.Context, userID uuid.UUID, input ProfileInput) (*model.Profile, error)
}

type profileService struct {
	users repository.UserRepository
}

func NewProfileService(users repository.UserRepository) ProfileService {
	return &profileService{users: users}
}

func (s *profileService) Get(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Profile == nil {
		return nil, apperror.NotFound("profile not found")
	}
	return user.Profile, nil
}

func (s *profileService) Upsert(ctx context.Context, userID uuid.UUID, input ProfileInput) (*model.Profile, error) {
	profile := &model.Profile{
		FullName:  strings.TrimSpace(input.FullName),
		Bio:       normalizeOptional(input.Bio),
		Interest:  normalizeOptional(input.Interest),
		AvatarURL: normalizeOptional(input.AvatarURL),
	}

	if err := s.users.UpsertProfile(ctx, userID, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

func normalizeOptional(value *string) *string {
	if value == nil {
		return nil
	}

	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}

	return &trimmed
}
