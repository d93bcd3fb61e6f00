package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/unlockedcoding/backend/internal/model"
	"github.com/unlockedcoding/backend/internal/repository"
	"github.com/unlockedcoding/backend/pkg/apperror"
)

type EnrollmentService interface {
	// Enroll is idempotent: re-enrolling returns the existing row.
	Enroll(ctx context.Context, userID, courseID uuid.UUID) (*model.Enrollment, error)
	Get(ctx context.Context, userID, courseID uuid.UUID) (*model.Enrollment, error)
	IsEnrolled(ctx context.Context, userID, courseID uuid.UUID) (bool, error)
	SetProgress(ctx context.Context, userID, courseID uuid.UUID, progress int) (*model.Enrollment, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*model.Enrollment, error)
}

type enrollmentService struct {
	enrollments repository.EnrollmentRepository
	courses     repository.CourseRepository
}

func NewEnrollmentService(enrollments repository.EnrollmentRepository, courses repository.CourseRepository) EnrollmentService {
	return &enrollmentService{
		enrollments: enrollments,
		courses:     courses,
	}
}

func (s *enrollmentService) Enroll(ctx context.Context, userID, courseID uuid.UUID) (*model.Enrollment, error) {
	if _, err := s.courses.FindByID(ctx, courseID); err != nil {
		return nil, err
	}

	existing, err := s.enrollments.Find(ctx, userID, courseID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return nil, err
	}

	enrollment := &model.Enrollment{
		UserID:   userID,
		CourseID: courseID,
	}
	if err := s.enrollments.Create(ctx, enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}

func (s *enrollmentService) Get(ctx context.Context, userID, courseID uuid.UUID) (*model.Enrollment, error) {
	return s.enrollments.Find(ctx, userID, courseID)
}

func (s *enrollmentService) IsEnrolled(ctx context.Context, userID, courseID uuid.UUID) (bool, error) {
	_, err := s.enrollments.Find(ctx, userID, courseID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *enrollmentService) SetProgress(ctx context.Context, userID, courseID uuid.UUID, progress int) (*model.Enrollment, error) {
	if progress < 0 || progress > 100 {
		return nil, apperror.Validation("progress", "progress must be between 0 and 100")
	}

	if err := s.enrollments.SetProgress(ctx, userID, courseID, progress); err != nil {
		return nil, err
	}
	return s.enrollments.Find(ctx, userID, courseID)
}

func (s *enrollmentService) ListForUser(ctx context.Context, userID uuid.UUID) ([]*model.Enrollment, error) {
	return s.enrollments.ListByUser(ctx, userID)
}
