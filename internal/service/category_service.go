package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/unlockedcoding/backend/internal/model"
	"github.com/unlockedcoding/backend/internal/repository"
	"github.com/unlockedcoding/backend/internal/search"
	"github.com/unlockedcoding/backend/pkg/apperror"
	"github.com/unlockedcoding/backend/pkg/slug"
)

type CategoryInput struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Description string `json:"description" binding:"required,min=10"`
	ImageURL    string `json:"image_url" binding:"required,url"`
}

type CategoryService interface {
	List(ctx context.Context) ([]*model.Category, error)
	GetBySlug(ctx context.Context, slug string) (*model.Category, error)
	Create(ctx context.Context, input CategoryInput) (*model.Category, error)
	Update(ctx context.Context, id uuid.UUID, input CategoryInput) (*model.Category, error)
	// Delete cascades through the category's courses and their dependents.
	Delete(ctx context.Context, id uuid.UUID) error
}

type categoryService struct {
	categories repository.CategoryRepository
	index      *search.CourseIndex
}

func NewCategoryService(categories repository.CategoryRepository, index *search.CourseIndex) CategoryService {
	return &categoryService{categories: categories, index: index}
}

func (s *categoryService) List(ctx context.Context) ([]*model.Category, error) {
	return s.categories.FindAll(ctx)
}

func (s *categoryService) GetBySlug(ctx context.Context, categorySlug string) (*model.Category, error) {
	return s.categories.FindBySlug(ctx, categorySlug)
}

func (s *categoryService) Create(ctx context.Context, input CategoryInput) (*model.Category, error) {
	categorySlug := slug.Make(input.Name)
	if categorySlug == "" {
		return nil, apperror.Validation("name", "name must contain at least one alphanumeric character")
	}

	if err := s.ensureSlugFree(ctx, categorySlug, uuid.Nil); err != nil {
		return nil, err
	}

	category := &model.Category{
		Name:        input.Name,
		Slug:        categorySlug,
		Description: input.Description,
		ImageURL:    input.ImageURL,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, input CategoryInput) (*model.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	newSlug := slug.Make(input.Name)
	if newSlug == "" {
		return nil, apperror.Validation("name", "name must contain at least one alphanumeric character")
	}
	if newSlug != category.Slug {
		if err := s.ensureSlugFree(ctx, newSlug, category.ID); err != nil {
			return nil, err
		}
	}

	category.Name = input.Name
	category.Slug = newSlug
	category.Description = input.Description
	category.ImageURL = input.ImageURL

	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		return err
	}

	courseIDs, err := s.categories.DeleteCascade(ctx, id)
	if err != nil {
		return err
	}

	for _, courseID := range courseIDs {
		_ = s.index.DeleteCourse(courseID)
	}
	return nil
}

func (s *categoryService) ensureSlugFree(ctx context.Context, categorySlug string, selfID uuid.UUID) error {
	existing, err := s.categories.FindBySlug(ctx, categorySlug)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID == selfID {
		return nil
	}
	return apperror.Conflict("a category with this name already exists")
}
