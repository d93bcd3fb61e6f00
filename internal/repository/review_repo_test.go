package repository

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/unlockedcoding/backend/internal/model"
)

func reviewFixture(t *testing.T) (*gorm.DB, ReviewRepository, *model.Course) {
	t.Helper()

	db := openTestDB(t)
	instructor := createTestUser(t, db, "instructor")
	category := createTestCategory(t, db, "Frontend", "frontend")
	course := createTestCourse(t, db, category.ID, instructor.ID, "React Basics", "react-basics")
	return db, NewReviewRepository(db), course
}

func addReview(t *testing.T, db *gorm.DB, repo ReviewRepository, courseID uuid.UUID, rating int) *model.Review {
	t.Helper()

	reviewer := createTestUser(t, db, "reviewer-"+uuid.NewString())
	review := &model.Review{
		UserID:   reviewer.ID,
		CourseID: courseID,
		Title:    "Solid course",
		Content:  "long enough review content",
		Rating:   rating,
	}
	if err := repo.Create(testCtx, review); err != nil {
		t.Fatalf("failed to create review: %v", err)
	}
	return review
}

func TestReviewRepository_CreateRecomputesRating(t *testing.T) {
	db, repo, course := reviewFixture(t)

	for _, rating := range []int{5, 4, 5, 4} {
		addReview(t, db, repo, course.ID, rating)
	}

	got := reloadCourse(t, db, course.ID)
	if got.ReviewCount != 4 {
		t.Fatalf("expected review_count=4, got %d", got.ReviewCount)
	}
	if got.Rating == nil || *got.Rating != 4.5 {
		t.Fatalf("expected rating=4.5, got %v", got.Rating)
	}
}

func TestReviewRepository_DeleteRecomputesRating(t *testing.T) {
	db, repo, course := reviewFixture(t)

	var lastFour *model.Review
	for _, rating := range []int{5, 4, 5, 4} {
		r := addReview(t, db, repo, course.ID, rating)
		if rating == 4 {
			lastFour = r
		}
	}

	if err := repo.Delete(testCtx, lastFour.ID); err != nil {
		t.Fatalf("failed to delete review: %v", err)
	}

	got := reloadCourse(t, db, course.ID)
	if got.ReviewCount != 3 {
		t.Fatalf("expected review_count=3 after delete, got %d", got.ReviewCount)
	}
	if got.Rating == nil || *got.Rating != 4.7 {
		t.Fatalf("expected rating=4.7 after delete, got %v", got.Rating)
	}
}

func TestReviewRepository_RatingClearsWhenLastReviewRemoved(t *testing.T) {
	db, repo, course := reviewFixture(t)

	review := addReview(t, db, repo, course.ID, 3)
	if err := repo.Delete(testCtx, review.ID); err != nil {
		t.Fatalf("failed to delete review: %v", err)
	}

	got := reloadCourse(t, db, course.ID)
	if got.ReviewCount != 0 {
		t.Fatalf("expected review_count=0, got %d", got.ReviewCount)
	}
	if got.Rating != nil {
		t.Fatalf("expected rating to be nil with no reviews, got %v", *got.Rating)
	}
}

func TestReviewRepository_UpdateRecomputesRating(t *testing.T) {
	db, repo, course := reviewFixture(t)

	review := addReview(t, db, repo, course.ID, 2)
	review.Rating = 5
	if err := repo.Update(testCtx, review); err != nil {
		t.Fatalf("failed to update review: %v", err)
	}

	got := reloadCourse(t, db, course.ID)
	if got.Rating == nil || *got.Rating != 5.0 {
		t.Fatalf("expected rating=5 after update, got %v", got.Rating)
	}
}
