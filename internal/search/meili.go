package search

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/meilisearch/meilisearch-go"
	"go.uber.org/zap"

	"github.com/unlockedcoding/backend/internal/model"
)

const courseIndex = "courses"

// CourseIndex mirrors the course catalog into Meilisearch for full-text
// search. A nil *CourseIndex is valid and turns every method into a no-op, so
// the platform runs without a search backend configured.
type CourseIndex struct {
	client meilisearch.ServiceManager
}

func NewCourseIndex(client meilisearch.ServiceManager) *CourseIndex {
	idx := &CourseIndex{client: client}
	idx.initIndex()
	return idx
}

func (s *CourseIndex) initIndex() {
	filterable := []any{"category_id"}
	if _, err := s.client.Index(courseIndex).UpdateFilterableAttributes(&filterable); err != nil {
		zap.L().Warn("failed to update courses filterable attributes", zap.Error(err))
	}

	sortable := []string{"created_at", "rating"}
	if _, err := s.client.Index(courseIndex).UpdateSortableAttributes(&sortable); err != nil {
		zap.L().Warn("failed to update courses sortable attributes", zap.Error(err))
	}
}

type courseDocument struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	CategoryID  string   `json:"category_id"`
	Rating      *float64 `json:"rating"`
	CreatedAt   int64    `json:"created_at"`
}

func (s *CourseIndex) IndexCourse(course *model.Course) error {
	if s == nil {
		return nil
	}

	doc := courseDocument{
		ID:          course.ID.String(),
		Title:       course.Title,
		Slug:        course.Slug,
		Description: course.Description,
		CategoryID:  course.CategoryID.String(),
		Rating:      course.Rating,
		CreatedAt:   course.CreatedAt.Unix(),
	}

	if _, err := s.client.Index(courseIndex).AddDocuments([]courseDocument{doc}, strPtr("id")); err != nil {
		return fmt.Errorf("failed to index course: %w", err)
	}
	return nil
}

func (s *CourseIndex) DeleteCourse(id uuid.UUID) error {
	if s == nil {
		return nil
	}

	if _, err := s.client.Index(courseIndex).DeleteDocument(id.String()); err != nil {
		return fmt.Errorf("failed to delete course document: %w", err)
	}
	return nil
}

// Search returns matching course IDs, best match first.
func (s *CourseIndex) Search(query string, categoryID *uuid.UUID) ([]uuid.UUID, error) {
	if s == nil {
		return nil, nil
	}

	req := &meilisearch.SearchRequest{Limit: 100}
	if categoryID != nil {
		req.Filter = fmt.Sprintf("category_id = %q", categoryID.String())
	}

	resp, err := s.client.Index(courseIndex).Search(query, req)
	if err != nil {
		return nil, fmt.Errorf("course search failed: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		var doc courseDocument
		if err := hit.Decode(&doc); err != nil {
			continue
		}
		id, err := uuid.Parse(doc.ID)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func strPtr(s string) *string {
	return &s
}
