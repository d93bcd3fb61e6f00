package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/unlockedcoding/backend/internal/model"
	"github.com/unlockedcoding/backend/pkg/apperror"
)

type ContactRepository interface {
	Create(ctx context.Context, submission *model.ContactSubmission) error
	FindAll(ctx context.Context) ([]*model.ContactSubmission, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.ContactSubmission, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountUnread(ctx context.Context) (int64, error)
}

type contactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, submission *model.ContactSubmission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

func (r *contactRepository) FindAll(ctx context.Context) ([]*model.ContactSubmission, error) {
	var submissions []*model.ContactSubmission
	if err := r.db.WithContext(ctx).
		Order("created_at desc").
		Find(&submissions).Error; err != nil {
		return nil, err
	}
	return submissions, nil
}

func (r *contactRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.ContactSubmission, error) {
	var submission model.ContactSubmission
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&submission).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("contact submission not found")
		}
		return nil, err
	}
	return &submission, nil
}

func (r *contactRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&model.ContactSubmission{}).
		Where("id = ?", id).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("contact submission not found")
	}
	return nil
}

func (r *contactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ContactSubmission{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("contact submission not found")
	}
	return nil
}

func (r *contactRepository) CountUnread(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.ContactSubmission{}).
		Where("is_read = ?", false).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
