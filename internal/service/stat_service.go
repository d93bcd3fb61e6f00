package service

import (
	"context"

	"github.com/unlockedcoding/backend/internal/repository"
)

type DashboardStats struct {
	Users         int64 `json:"users"`
	Courses       int64 `json:"courses"`
	Categories    int64 `json:"categories"`
	Enrollments   int64 `json:"enrollments"`
	UnreadContact int64 `json:"unread_contact"`
}

type StatService interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
	UserCount(ctx context.Context) (int64, error)
	CourseCount(ctx context.Context) (int64, error)
	CategoryCount(ctx context.Context) (int64, error)
	EnrollmentCount(ctx context.Context) (int64, error)
}

type statService struct {
	users       repository.UserRepository
	courses     repository.CourseRepository
	categories  repository.CategoryRepository
	enrollments repository.EnrollmentRepository
	contacts    repository.ContactRepository
}

func NewStatService(
	users repository.UserRepository,
	courses repository.CourseRepository,
	categories repository.CategoryRepository,
	enrollments repository.EnrollmentRepository,
	contacts repository.ContactRepository,
) StatService {
	return &statService{
		users:       users,
		courses:     courses,
		categories:  categories,
		enrollments: enrollments,
		contacts:    contacts,
	}
}

func (s *statService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	var err error
	if stats.Users, err = s.users.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Courses, err = s.courses.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Categories, err = s.categories.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Enrollments, err = s.enrollments.Count(ctx); err != nil {
		return nil, err
	}
	if stats.UnreadContact, err = s.contacts.CountUnread(ctx); err != nil {
		return nil, err
	}

	return stats, nil
}

func (s *statService) UserCount(ctx context.Context) (int64, error) {
	return s.users.Count(ctx)
}

func (s *statService) CourseCount(ctx context.Context) (int64, error) {
	return s.courses.Count(ctx)
}

func (s *statService) CategoryCount(ctx context.Context) (int64, error) {
	return s.categories.Count(ctx)
}

func (s *statService) EnrollmentCount(ctx context.Context) (int64, error) {
	return s.enrollments.Count(ctx)
}
