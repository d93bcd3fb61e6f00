package repository

import (
	"errors"
	"testing"

	"github.com/unlockedcoding/backend/internal/model"
	"github.com/unlockedcoding/backend/pkg/apperror"
)

func TestCategoryRepository_DeleteCascadeRemovesDependents(t *testing.T) {
	db := openTestDB(t)
	categories := NewCategoryRepository(db)
	lessons := NewLessonRepository(db)
	reviews := NewReviewRepository(db)
	enrollments := NewEnrollmentRepository(db)

	instructor := createTestUser(t, db, "instructor")
	student := createTestUser(t, db, "student")
	category := createTestCategory(t, db, "DevOps", "devops")
	course := createTestCourse(t, db, category.ID, instructor.ID, "Docker Basics", "docker-basics")
	keptCategory := createTestCategory(t, db, "Design", "design")
	keptCourse := createTestCourse(t, db, keptCategory.ID, instructor.ID, "Figma Basics", "figma-basics")

	addLesson(t, lessons, course.ID, 1)
	if err := enrollments.Create(testCtx, &model.Enrollment{UserID: student.ID, CourseID: course.ID}); err != nil {
		t.Fatalf("failed to enroll: %v", err)
	}
	if err := reviews.Create(testCtx, &model.Review{
		UserID:   student.ID,
		CourseID: course.ID,
		Title:    "Great intro",
		Content:  "long enough review content",
		Rating:   5,
	}); err != nil {
		t.Fatalf("failed to create review: %v", err)
	}

	courseIDs, err := categories.DeleteCascade(testCtx, category.ID)
	if err != nil {
		t.Fatalf("DeleteCascade: %v", err)
	}
	if len(courseIDs) != 1 || courseIDs[0] != course.ID {
		t.Fatalf("expected deleted course IDs [%s], got %v", course.ID, courseIDs)
	}

	if _, err := categories.FindByID(testCtx, category.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("expected category to be gone, got %v", err)
	}

	for table, want := range map[string]int64{
		"courses":     1, // keptCourse survives
		"lessons":     0,
		"enrollments": 0,
		"reviews":     0,
	} {
		var count int64
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Fatalf("failed to count %s: %v", table, err)
		}
		if count != want {
			t.Fatalf("expected %d rows in %s, got %d", want, table, count)
		}
	}

	var remaining model.Course
	if err := db.Where("id = ?", keptCourse.ID).First(&remaining).Error; err != nil {
		t.Fatalf("expected course in another category to survive: %v", err)
	}
}

func TestCategoryRepository_FindAllOrdersByName(t *testing.T) {
	db := openTestDB(t)
	repo := NewCategoryRepository(db)

	createTestCategory(t, db, "Zig", "zig")
	createTestCategory(t, db, "Assembly", "assembly")
	createTestCategory(t, db, "Mobile", "mobile")

	all, err := repo.FindAll(testCtx)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(all))
	}
	if all[0].Name != "Assembly" || all[2].Name != "Zig" {
		t.Fatalf("expected name ordering, got %s..%s", all[0].Name, all[2].Name)
	}
}

func TestCourseRepository_DeleteCascadeRemovesDependents(t *testing.T) {
	db := openTestDB(t)
	courses := NewCourseRepository(db)
	lessons := NewLessonRepository(db)

	instructor := createTestUser(t, db, "instructor")
	category := createTestCategory(t, db, "Cloud", "cloud")
	course := createTestCourse(t, db, category.ID, instructor.ID, "AWS Basics", "aws-basics")
	addLesson(t, lessons, course.ID, 1)

	if err := courses.DeleteCascade(testCtx, course.ID); err != nil {
		t.Fatalf("DeleteCascade: %v", err)
	}

	if _, err := courses.FindByID(testCtx, course.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("expected course to be gone, got %v", err)
	}

	var lessonCount int64
	if err := db.Table("lessons").Count(&lessonCount).Error; err != nil {
		t.Fatalf("failed to count lessons: %v", err)
	}
	if lessonCount != 0 {
		t.Fatalf("expected lessons to be removed, got %d", lessonCount)
	}
}
