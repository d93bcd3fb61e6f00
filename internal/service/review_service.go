package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/unlockedcoding/backend/internal/middleware"
	"github.com/unlockedcoding/backend/internal/model"
	"github.com/unlockedcoding/backend/internal/repository"
	"github.com/unlockedcoding/backend/pkg/apperror"
)

type ReviewInput struct {
	Title   string `json:"title" binding:"required,min=3,max=200"`
	Content string `json:"content" binding:"required,min=10"`
	Rating  int    `json:"rating" binding:"required,gte=1,lte=5"`
}

type ReviewService interface {
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*model.Review, error)
	// Create requires the caller to be enrolled in the course. With the
	// single-review policy (the default) a resubmission replaces the
	// caller's existing review instead of adding a row.
	Create(ctx context.Context, caller middleware.Identity, courseID uuid.UUID, input ReviewInput) (*model.Review, error)
	Update(ctx context.Context, caller middleware.Identity, id uuid.UUID, input ReviewInput) (*model.Review, error)
	Delete(ctx context.Context, caller middleware.Identity, id uuid.UUID) error
}

type reviewService struct {
	reviews       repository.ReviewRepository
	enrollments   repository.EnrollmentRepository
	courses       repository.CourseRepository
	sanitizer     *bluemonday.Policy
	allowMultiple bool
}

func NewReviewService(
	reviews repository.ReviewRepository,
	enrollments repository.EnrollmentRepository,
	courses repository.CourseRepository,
	allowMultiple bool,
) ReviewService {
	return &reviewService{
		reviews:       reviews,
		enrollments:   enrollments,
		courses:       courses,
		sanitizer:     bluemonday.StrictPolicy(),
		allowMultiple: allowMultiple,
	}
}

func (s *reviewService) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*model.Review, error) {
	if _, err := s.courses.FindByID(ctx, courseID); err != nil {
		return nil, err
	}
	return s.reviews.FindByCourse(ctx, courseID)
}

func (s *reviewService) Create(ctx context.Context, caller middleware.Identity, courseID uuid.UUID, input ReviewInput) (*model.Review, error) {
	if _, err := s.courses.FindByID(ctx, courseID); err != nil {
		return nil, err
	}

	if _, err := s.enrollments.Find(ctx, caller.UserID, courseID); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.New(http.StatusForbidden, "you must be enrolled to review this course", apperror.ErrForbidden)
		}
		return nil, err
	}

	if !s.allowMultiple {
		existing, err := s.reviews.FindByUserAndCourse(ctx, caller.UserID, courseID)
		if err == nil {
			s.applyInput(existing, input)
			if err := s.reviews.Update(ctx, existing); err != nil {
				return nil, err
			}
			return existing, nil
		}
		if !errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
	}

	review := &model.Review{
		UserID:   caller.UserID,
		CourseID: courseID,
	}
	s.applyInput(review, input)

	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *reviewService) Update(ctx context.Context, caller middleware.Identity, id uuid.UUID, input ReviewInput) (*model.Review, error) {
	review, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if review.UserID != caller.UserID && !caller.IsAdmin {
		return nil, apperror.New(http.StatusForbidden, "you can only edit your own reviews", apperror.ErrForbidden)
	}

	s.applyInput(review, input)
	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *reviewService) Delete(ctx context.Context, caller middleware.Identity, id uuid.UUID) error {
	review, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if review.UserID != caller.UserID && !caller.IsAdmin {
		return apperror.New(http.StatusForbidden, "you can only delete your own reviews", apperror.ErrForbidden)
	}

	return s.reviews.Delete(ctx, id)
}

func (s *reviewService) applyInput(review *model.Review, input ReviewInput) {
	review.Title = s.sanitizer.Sanitize(input.Title)
	review.Content = s.sanitizer.Sanitize(input.Content)
	review.Rating = input.Rating
}
