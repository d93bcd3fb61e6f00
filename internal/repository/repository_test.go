package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

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

func createTestUser(t *testing.T, db *gorm.DB, username string) *model.User {
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

func createTestCategory(t *testing.T, db *gorm.DB, name, slug string) *model.Category {
	t.Helper()

	category := &model.Category{
		Name:        name,
		Slug:        slug,
		Description: "a test category for " + name,
		ImageURL:    "https://example.com/cat.png",
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create category %q: %v", name, err)
	}
	return category
}

func createTestCourse(t *testing.T, db *gorm.DB, categoryID, instructorID uuid.UUID, title, slug string) *model.Course {
	t.Helper()

	course := &model.Course{
		Title:        title,
		Slug:         slug,
		Description:  "a test course about " + title,
		ImageURL:     "https://example.com/course.png",
		CategoryID:   categoryID,
		InstructorID: instructorID,
		Duration:     "4h",
	}
	if err := db.Create(course).Error; err != nil {
		t.Fatalf("failed to create course %q: %v", title, err)
	}
	return course
}

func reloadCourse(t *testing.T, db *gorm.DB, id uuid.UUID) *model.Course {
	t.Helper()

	var course model.Course
	if err := db.Where("id = ?", id).First(&course).Error; err != nil {
		t.Fatalf("failed to reload course: %v", err)
	}
	return &course
}

var testCtx = context.Background()
