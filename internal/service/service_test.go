package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/unlockedcoding/backend/internal/middleware"
	"github.com/unlockedcoding/backend/internal/model"
	"github.com/unlockedcoding/backend/pkg/password"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.Category{},
		&model.Course{},
		&model.Lesson{},
		&model.Enrollment{},
		&model.Review{},
		&model.ContactSubmission{},
		&model.Session{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()

	hash, err := password.Hash("testpass123")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &model.User{Username: username, PasswordHash: hash}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %q: %v", username, err)
	}
	return user
}

func seedCourse(t *testing.T, db *gorm.DB) (*model.Course, *model.User) {
	t.Helper()

	instructor := seedUser(t, db, "instructor-"+uuid.NewString())
	category := &model.Category{
		Name:        "Programming",
		Slug:        "programming-" + uuid.NewString(),
		Description: "a test category",
		ImageURL:    "https://example.com/cat.png",
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create category: %v", err)
	}

	course := &model.Course{
		Title:        "Test Course",
		Slug:         "test-course-" + uuid.NewString(),
		Description:  "a course used in tests",
		ImageURL:     "https://example.com/course.png",
		CategoryID:   category.ID,
		InstructorID: instructor.ID,
		Duration:     "2h",
	}
	if err := db.Create(course).Error; err != nil {
		t.Fatalf("failed to create course: %v", err)
	}
	return course, instructor
}

func identityFor(user *model.User) middleware.Identity {
	return middleware.Identity{
		UserID:   user.ID,
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
	}
}

var testCtx = context.Background()
