package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/unlockedcoding/backend/internal/model"
	"github.com/unlockedcoding/backend/internal/repository"
	"github.com/unlockedcoding/backend/pkg/apperror"
)

type ContactInput struct {
	Name             string  `json:"name" binding:"required,min=2,max=100"`
	Email            string  `json:"email" binding:"required,email"`
	TelegramUsername *string `json:"telegram_username"`
	Purpose          string  `json:"purpose" binding:"required,oneof=become_admin share_course copyright other"`
	Message          string  `json:"message" binding:"required,min=10"`
}

type ContactService interface {
	// Submit is rate limited per client IP when Redis is configured.
	Submit(ctx context.Context, clientIP string, input ContactInput) (*model.ContactSubmission, error)
	List(ctx context.Context) ([]*model.ContactSubmission, error)
	Get(ctx context.Context, id uuid.UUID) (*model.ContactSubmission, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type contactService struct {
	contacts  repository.ContactRepository
	rdb       *redis.Client
	rateLimit time.Duration
}

func NewContactService(contacts repository.ContactRepository, rdb *redis.Client, rateLimit time.Duration) ContactService {
	return &contactService{
		contacts:  contacts,
		rdb:       rdb,
		rateLimit: rateLimit,
	}
}

func (s *contactService) Submit(ctx context.Context, clientIP string, input ContactInput) (*model.ContactSubmission, error) {
	allowed, err := s.checkRateLimit(ctx, clientIP)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperror.ErrRateLimitExceeded
	}

	submission := &model.ContactSubmission{
		Name:             input.Name,
		Email:            input.Email,
		TelegramUsername: normalizeOptional(input.TelegramUsername),
		Purpose:          input.Purpose,
		Message:          input.Message,
	}
	if err := s.contacts.Create(ctx, submission); err != nil {
		return nil, err
	}
	return submission, nil
}

func (s *contactService) checkRateLimit(ctx context.Context, clientIP string) (bool, error) {
	if s.rdb == nil || s.rateLimit <= 0 {
		return true, nil
	}

	key := fmt.Sprintf("rate_limit:contact:%s", clientIP)
	wasSet, err := s.rdb.SetNX(ctx, key, "locked", s.rateLimit).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit in redis: %w", err)
	}
	return wasSet, nil
}

func (s *contactService) List(ctx context.Context) ([]*model.ContactSubmission, error) {
	return s.contacts.FindAll(ctx)
}

func (s *contactService) Get(ctx context.Context, id uuid.UUID) (*model.ContactSubmission, error) {
	return s.contacts.FindByID(ctx, id)
}

func (s *contactService) MarkRead(ctx context.Context, id uuid.UUID) error {
	return s.contacts.MarkRead(ctx, id)
}

func (s *contactService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.contacts.Delete(ctx, id)
}
