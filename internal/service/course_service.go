package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/unlockedcoding/backend/internal/model"
	"github.com/unlockedcoding/backend/internal/repository"
	"github.com/unlockedcoding/backend/internal/search"
	"github.com/unlockedcoding/backend/pkg/apperror"
	"github.com/unlockedcoding/backend/pkg/slug"
)

type CourseInput struct {
	Title              string    `json:"title" binding:"required,min=5,max=200"`
	Description        string    `json:"description" binding:"required,min=10"`
	LongDescription    *string   `json:"long_description"`
	ImageURL           string    `json:"image_url" binding:"required,url"`
	CategoryID         uuid.UUID `json:"category_id" binding:"required"`
	InstructorID       uuid.UUID `json:"instructor_id" binding:"required"`
	Price              *float64  `json:"price" binding:"omitempty,gte=0"`
	OriginalPrice      *float64  `json:"original_price" binding:"omitempty,gte=0"`
	Duration           string    `json:"duration" binding:"required,max=50"`
	LearningObjectives []string  `json:"learning_objectives"`
	Requirements       []string  `json:"requirements"`
	TargetAudience     []string  `json:"target_audience"`
}

type CourseFilter struct {
	CategoryID *uuid.UUID
	Search     string
}

type CourseService interface {
	List(ctx context.Context, filter CourseFilter) ([]*model.Course, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Course, error)
	ListByCategorySlug(ctx context.Context, categorySlug string) ([]*model.Course, error)
	Create(ctx context.Context, input CourseInput) (*model.Course, error)
	Update(ctx context.Context, id uuid.UUID, input CourseInput) (*model.Course, error)
	// Delete cascades through the course's lessons, enrollments and reviews.
	Delete(ctx context.Context, id uuid.UUID) error
}

type courseService struct {
	courses    repository.CourseRepository
	categories repository.CategoryRepository
	users      repository.UserRepository
	index      *search.CourseIndex
}

func NewCourseService(
	courses repository.CourseRepository,
	categories repository.CategoryRepository,
	users repository.UserRepository,
	index *search.CourseIndex,
) CourseService {
	return &courseService{
		courses:    courses,
		categories: categories,
		users:      users,
		index:      index,
	}
}

func (s *courseService) List(ctx context.Context, filter CourseFilter) ([]*model.Course, error) {
	if filter.Search != "" && s.index != nil {
		ids, err := s.index.Search(filter.Search, filter.CategoryID)
		if err != nil {
			// Search backend trouble degrades to the unfiltered listing.
			zap.L().Warn("course search unavailable", zap.Error(err))
			return s.courses.FindAll(ctx, filter.CategoryID)
		}
		return s.courses.FindByIDs(ctx, ids)
	}

	return s.courses.FindAll(ctx, filter.CategoryID)
}

func (s *courseService) Get(ctx context.Context, id uuid.UUID) (*model.Course, error) {
	return s.courses.FindByID(ctx, id)
}

func (s *courseService) ListByCategorySlug(ctx context.Context, categorySlug string) ([]*model.Course, error) {
	category, err := s.categories.FindBySlug(ctx, categorySlug)
	if err != nil {
		return nil, err
	}
	return s.courses.FindAll(ctx, &category.ID)
}

func (s *courseService) Create(ctx context.Context, input CourseInput) (*model.Course, error) {
	courseSlug := slug.Make(input.Title)
	if courseSlug == "" {
		return nil, apperror.Validation("title", "title must contain at least one alphanumeric character")
	}
	if err := s.ensureSlugFree(ctx, courseSlug, uuid.Nil); err != nil {
		return nil, err
	}

	if _, err := s.categories.FindByID(ctx, input.CategoryID); err != nil {
		return nil, err
	}
	if _, err := s.users.FindByID(ctx, input.InstructorID); err != nil {
		return nil, err
	}

	course := &model.Course{Slug: courseSlug}
	applyCourseInput(course, input)

	if err := s.courses.Create(ctx, course); err != nil {
		return nil, err
	}

	if err := s.index.IndexCourse(course); err != nil {
		zap.L().Warn("failed to index course", zap.Error(err))
	}
	return course, nil
}

func (s *courseService) Update(ctx context.Context, id uuid.UUID, input CourseInput) (*model.Course, error) {
	course, err := s.courses.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	newSlug := slug.Make(input.Title)
	if newSlug == "" {
		return nil, apperror.Validation("title", "title must contain at least one alphanumeric character")
	}
	if newSlug != course.Slug {
		if err := s.ensureSlugFree(ctx, newSlug, course.ID); err != nil {
			return nil, err
		}
		course.Slug = newSlug
	}

	if input.CategoryID != course.CategoryID {
		if _, err := s.categories.FindByID(ctx, input.CategoryID); err != nil {
			return nil, err
		}
	}
	if input.InstructorID != course.InstructorID {
		if _, err := s.users.FindByID(ctx, input.InstructorID); err != nil {
			return nil, err
		}
	}

	applyCourseInput(course, input)
	course.Category = nil
	course.Instructor = nil

	if err := s.courses.Update(ctx, course); err != nil {
		return nil, err
	}

	if err := s.index.IndexCourse(course); err != nil {
		zap.L().Warn("failed to index course", zap.Error(err))
	}
	return course, nil
}

func (s *courseService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.courses.FindByID(ctx, id); err != nil {
		return err
	}

	if err := s.courses.DeleteCascade(ctx, id); err != nil {
		return err
	}

	if err := s.index.DeleteCourse(id); err != nil {
		zap.L().Warn("failed to drop course document", zap.Error(err))
	}
	return nil
}

func (s *courseService) ensureSlugFree(ctx context.Context, courseSlug string, selfID uuid.UUID) error {
	existing, err := s.courses.FindBySlug(ctx, courseSlug)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID == selfID {
		return nil
	}
	return apperror.Conflict("a course with this title already exists")
}

func applyCourseInput(course *model.Course, input CourseInput) {
	course.Title = input.Title
	course.Description = input.Description
	course.LongDescription = normalizeOptional(input.LongDescription)
	course.ImageURL = input.ImageURL
	course.CategoryID = input.CategoryID
	course.InstructorID = input.InstructorID
	course.Price = input.Price
	course.OriginalPrice = input.OriginalPrice
	course.Duration = input.Duration
	course.LearningObjectives = datatypes.NewJSONSlice(input.LearningObjectives)
	course.Requirements = datatypes.NewJSONSlice(input.Requirements)
	course.TargetAudience = datatypes.NewJSONSlice(input.TargetAudience)
}
