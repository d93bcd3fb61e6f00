package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/unlockedcoding/backend/internal/model"
	"github.com/unlockedcoding/backend/pkg/apperror"
)

type LessonRepository interface {
	FindByCourse(ctx context.Context, courseID uuid.UUID) ([]*model.Lesson, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Lesson, error)
	Create(ctx context.Context, lesson *model.Lesson) error
	Update(ctx context.Context, lesson *model.Lesson) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type lessonRepository struct {
	db *gorm.DB
}

func NewLessonRepository(db *gorm.DB) LessonRepository {
	return &lessonRepository{db: db}
}

func (r *lessonRepository) FindByCourse(ctx context.Context, courseID uuid.UUID) ([]*model.Lesson, error) {
	var lessons []*model.Lesson
	if err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("position asc").
		Find(&lessons).Error; err != nil {
		return nil, err
	}
	return lessons, nil
}

func (r *lessonRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Lesson, error) {
	var lesson model.Lesson
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&lesson).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("lesson not found")
		}
		return nil, err
	}
	return &lesson, nil
}

// Create inserts the lesson and recounts the owning course's lesson_count in
// the same transaction. The recount is a single aggregate statement so it
// tolerates drift and concurrent writers.
func (r *lessonRepository) Create(ctx context.Context, lesson *model.Lesson) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(lesson).Error; err != nil {
			return err
		}
		return recountLessons(tx, lesson.CourseID)
	})
}

func (r *lessonRepository) Update(ctx context.Context, lesson *model.Lesson) error {
	return r.db.WithContext(ctx).Save(lesson).Error
}

func (r *lessonRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lesson model.Lesson
		if err := tx.Where("id = ?", id).First(&lesson).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("lesson not found")
			}
			return err
		}

		if err := tx.Delete(&lesson).Error; err != nil {
			return err
		}
		return recountLessons(tx, lesson.CourseID)
	})
}

func recountLessons(tx *gorm.DB, courseID uuid.UUID) error {
	return tx.Exec(
		"UPDATE courses SET lesson_count = (SELECT COUNT(*) FROM lessons WHERE course_id = ?) WHERE id = ?",
		courseID, courseID,
	).Error
}
