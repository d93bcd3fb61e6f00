package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/unlockedcoding/backend/internal/model"
	"github.com/unlockedcoding/backend/internal/repository"
)

type LessonInput struct {
	Title       string  `json:"title" binding:"required,min=3,max=200"`
	Description string  `json:"description" binding:"required,min=10"`
	Content     *string `json:"content"`
	VideoURL    *string `json:"video_url" binding:"omitempty,url"`
	Duration    string  `json:"duration" binding:"required,max=50"`
	Position    int     `json:"position" binding:"required,gte=1"`
}

type LessonService interface {
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*model.Lesson, error)
	Create(ctx context.Context, courseID uuid.UUID, input LessonInput) (*model.Lesson, error)
	Update(ctx context.Context, id uuid.UUID, input LessonInput) (*model.Lesson, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type lessonService struct {
	lessons   repository.LessonRepository
	courses   repository.CourseRepository
	sanitizer *bluemonday.Policy
}

func NewLessonService(lessons repository.LessonRepository, courses repository.CourseRepository) LessonService {
	return &lessonService{
		lessons: lessons,
		courses: courses,
		// Lesson content is author-provided HTML rendered to students.
		sanitizer: bluemonday.UGCPolicy(),
	}
}

func (s *lessonService) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*model.Lesson, error) {
	if _, err := s.courses.FindByID(ctx, courseID); err != nil {
		return nil, err
	}
	return s.lessons.FindByCourse(ctx, courseID)
}

func (s *lessonService) Create(ctx context.Context, courseID uuid.UUID, input LessonInput) (*model.Lesson, error) {
	if _, err := s.courses.FindByID(ctx, courseID); err != nil {
		return nil, err
	}

	lesson := &model.Lesson{CourseID: courseID}
	s.applyInput(lesson, input)

	if err := s.lessons.Create(ctx, lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *lessonService) Update(ctx context.Context, id uuid.UUID, input LessonInput) (*model.Lesson, error) {
	lesson, err := s.lessons.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.applyInput(lesson, input)
	if err := s.lessons.Update(ctx, lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *lessonService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.lessons.Delete(ctx, id)
}

func (s *lessonService) applyInput(lesson *model.Lesson, input LessonInput) {
	lesson.Title = input.Title
	lesson.Description = input.Description
	lesson.VideoURL = normalizeOptional(input.VideoURL)
	lesson.Duration = input.Duration
	lesson.Position = input.Position

	if content := normalizeOptional(input.Content); content != nil {
		sanitized := s.sanitizer.Sanitize(*content)
		lesson.Content = &sanitized
	} else {
		lesson.Content = nil
	}
}
