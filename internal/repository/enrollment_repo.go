package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/unlockedcoding/backend/internal/model"
	"github.com/unlockedcoding/backend/pkg/apperror"
)

type EnrollmentRepository interface {
	Find(ctx context.Context, userID, courseID uuid.UUID) (*model.Enrollment, error)
	Create(ctx context.Context, enrollment *model.Enrollment) error
	SetProgress(ctx context.Context, userID, courseID uuid.UUID, progress int) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Enrollment, error)
	Count(ctx context.Context) (int64, error)
}

type enrollmentRepository struct {
	db *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (r *enrollmentRepository) Find(ctx context.Context, userID, courseID uuid.UUID) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("enrollment not found")
		}
		return nil, err
	}
	return &enrollment, nil
}

func (r *enrollmentRepository) Create(ctx context.Context, enrollment *model.Enrollment) error {
	return r.db.WithContext(ctx).Create(enrollment).Error
}

func (r *enrollmentRepository) SetProgress(ctx context.Context, userID, courseID uuid.UUID, progress int) error {
	result := r.db.WithContext(ctx).
		Model(&model.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Updates(map[string]any{
			"progress":  progress,
			"completed": progress == 100,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("enrollment not found")
	}
	return nil
}

func (r *enrollmentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Enrollment, error) {
	var enrollments []*model.Enrollment
	if err := r.db.WithContext(ctx).
		Preload("Course").
		Preload("Course.Category").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&enrollments).Error; err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (r *enrollmentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Enrollment{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
