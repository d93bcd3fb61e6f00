package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/unlockedcoding/backend/internal/model"
	"github.com/unlockedcoding/backend/pkg/apperror"
)

type CategoryRepository interface {
	FindAll(ctx context.Context) ([]*model.Category, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	FindBySlug(ctx context.Context, slug string) (*model.Category, error)
	Create(ctx context.Context, category *model.Category) error
	Update(ctx context.Context, category *model.Category) error
	// DeleteCascade removes the category together with its courses and their
	// lessons, enrollments and reviews, all in one transaction. It returns
	// the IDs of the deleted courses so callers can drop search documents.
	DeleteCascade(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error)
	Count(ctx context.Context) (int64, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) FindAll(ctx context.Context) ([]*model.Category, error) {
	var categories []*model.Category
	if err := r.db.WithContext(ctx).
		Order("name asc").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("category not found")
		}
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindBySlug(ctx context.Context, slug string) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("category not found")
		}
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) Create(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepository) Update(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *categoryRepository) DeleteCascade(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	var courseIDs []uuid.UUID

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Course{}).
			Where("category_id = ?", id).
			Pluck("id", &courseIDs).Error; err != nil {
			return err
		}

		if len(courseIDs) > 0 {
			for _, m := range []any{&model.Lesson{}, &model.Enrollment{}, &model.Review{}} {
				if err := tx.Where("course_id IN ?", courseIDs).Delete(m).Error; err != nil {
					return err
				}
			}
			if err := tx.Where("id IN ?", courseIDs).Delete(&model.Course{}).Error; err != nil {
				return err
			}
		}

		return tx.Where("id = ?", id).Delete(&model.Category{}).Error
	})
	if err != nil {
		return nil, err
	}

	return courseIDs, nil
}

func (r *categoryRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Category{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
