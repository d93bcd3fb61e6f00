package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Slug        string    `gorm:"size:120;uniqueIndex;not null" json:"slug"`
	Description string    `gorm:"type:text;not null" json:"description"`
	ImageURL    string    `gorm:"type:text;not null" json:"image_url"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type Course struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title           string    `gorm:"size:200;not null" json:"title"`
	Slug            string    `gorm:"size:220;uniqueIndex;not null" json:"slug"`
	Description     string    `gorm:"type:text;not null" json:"description"`
	LongDescription *string   `gorm:"type:text" json:"long_description,omitempty"`
	ImageURL        string    `gorm:"type:text;not null" json:"image_url"`
	CategoryID      uuid.UUID `gorm:"type:uuid;not null;index" json:"category_id"`
	Category        *Category `json:"category,omitempty"`
	InstructorID    uuid.UUID `gorm:"type:uuid;not null;index" json:"instructor_id"`
	Instructor      *User     `json:"instructor,omitempty"`
	Price           *float64  `gorm:"type:decimal(10,2)" json:"price,omitempty"`
	OriginalPrice   *float64  `gorm:"type:decimal(10,2)" json:"original_price,omitempty"`
	Duration        string    `gorm:"size:50;not null" json:"duration"`

	// Denormalized aggregates, recomputed atomically on lesson and review
	// writes. Rating is nil while the course has no reviews.
	LessonCount int      `gorm:"not null;default:0" json:"lesson_count"`
	Rating      *float64 `gorm:"type:decimal(3,1)" json:"rating"`
	ReviewCount int      `gorm:"not null;default:0" json:"review_count"`

	LearningObjectives datatypes.JSONSlice[string] `json:"learning_objectives"`
	Requirements       datatypes.JSONSlice[string] `json:"requirements"`
	TargetAudience     datatypes.JSONSlice[string] `json:"target_audience"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type Lesson struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Content     *string   `gorm:"type:text" json:"content,omitempty"`
	VideoURL    *string   `gorm:"type:text" json:"video_url,omitempty"`
	Duration    string    `gorm:"size:50;not null" json:"duration"`
	CourseID    uuid.UUID `gorm:"type:uuid;not null;index" json:"course_id"`
	Position    int       `gorm:"not null" json:"position"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (l *Lesson) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
