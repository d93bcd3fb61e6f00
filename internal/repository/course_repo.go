package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/unlockedcoding/backend/internal/model"
	"github.com/unlockedcoding/backend/pkg/apperror"
)

type CourseRepository interface {
	FindAll(ctx context.Context, categoryID *uuid.UUID) ([]*model.Course, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Course, error)
	FindBySlug(ctx context.Context, slug string) (*model.Course, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Course, error)
	Create(ctx context.Context, course *model.Course) error
	Update(ctx context.Context, course *model.Course) error
	// DeleteCascade removes the course together with its lessons, enrollments
	// and reviews in one transaction.
	DeleteCascade(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

type courseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) FindAll(ctx context.Context, categoryID *uuid.UUID) ([]*model.Course, error) {
	query := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Instructor").
		Order("created_at desc")

	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}

	var courses []*model.Course
	if err := query.Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	var course model.Course
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Instructor").
		Preload("Instructor.Profile").
		Where("id = ?", id).
		First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("course not found")
		}
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) FindBySlug(ctx context.Context, slug string) (*model.Course, error) {
	var course model.Course
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("course not found")
		}
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*model.Course, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var courses []*model.Course
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Instructor").
		Where("id IN ?", ids).
		Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepository) Create(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepository) Update(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Save(course).Error
}

func (r *courseRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{&model.Lesson{}, &model.Enrollment{}, &model.Review{}} {
			if err := tx.Where("course_id = ?", id).Delete(m).Error; err != nil {
				return err
			}
		}
		return tx.Where("id = ?", id).Delete(&model.Course{}).Error
	})
}

func (r *courseRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Course{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
