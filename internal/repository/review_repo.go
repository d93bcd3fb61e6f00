package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/unlockedcoding/backend/internal/model"
	"github.com/unlockedcoding/backend/pkg/apperror"
)

type ReviewRepository interface {
	FindByCourse(ctx context.Context, courseID uuid.UUID) ([]*model.Review, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Review, error)
	FindByUserAndCourse(ctx context.Context, userID, courseID uuid.UUID) (*model.Review, error)
	Create(ctx context.Context, review *model.Review) error
	Update(ctx context.Context, review *model.Review) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) FindByCourse(ctx context.Context, courseID uuid.UUID) ([]*model.Review, error) {
	var reviews []*model.Review
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("User.Profile").
		Where("course_id = ?", courseID).
		Order("created_at desc").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	var review model.Review
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("review not found")
		}
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) FindByUserAndCourse(ctx context.Context, userID, courseID uuid.UUID) (*model.Review, error) {
	var review model.Review
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("review not found")
		}
		return nil, err
	}
	return &review, nil
}

// Create inserts the review and recomputes the course aggregate in the same
// transaction, so a reader never observes the new review with a stale rating.
func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(review).Error; err != nil {
			return err
		}
		return recomputeRating(tx, review.CourseID)
	})
}

func (r *reviewRepository) Update(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(review).Error; err != nil {
			return err
		}
		return recomputeRating(tx, review.CourseID)
	})
}

func (r *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var review model.Review
		if err := tx.Where("id = ?", id).First(&review).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("review not found")
			}
			return err
		}

		if err := tx.Delete(&review).Error; err != nil {
			return err
		}
		return recomputeRating(tx, review.CourseID)
	})
}

// recomputeRating refreshes the denormalized rating and review_count with a
// single aggregate statement. AVG over zero rows is NULL, which clears the
// rating when the last review goes away.
func recomputeRating(tx *gorm.DB, courseID uuid.UUID) error {
	return tx.Exec(
		`UPDATE courses SET
			rating = (SELECT ROUND(AVG(rating * 1.0), 1) FROM reviews WHERE course_id = ?),
			review_count = (SELECT COUNT(*) FROM reviews WHERE course_id = ?)
		WHERE id = ?`,
		courseID, courseID, courseID,
	).Error
}
