package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/unlockedcoding/backend/internal/service"
	"github.com/unlockedcoding/backend/pkg/apperror"
	"github.com/unlockedcoding/backend/pkg/response"
	"github.com/unlockedcoding/backend/pkg/validator"
)

type CourseHandler struct {
	courses service.CourseService
	lessons service.LessonService
}

func NewCourseHandler(courses service.CourseService, lessons service.LessonService) *CourseHandler {
	return &CourseHandler{courses: courses, lessons: lessons}
}

func (h *CourseHandler) List(c *gin.Context) {
	filter := service.CourseFilter{Search: c.Query("search")}

	if raw := c.Query("category_id"); raw != "" {
		categoryID, err := uuid.Parse(raw)
		if err != nil {
			response.Error(c, apperror.Validation("category_id", "must be a valid UUID"))
			return
		}
		filter.CategoryID = &categoryID
	}

	courses, err := h.courses.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, courses)
}

func (h *CourseHandler) Get(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	course, err := h.courses.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) ListLessons(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	lessons, err := h.lessons.ListByCourse(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, lessons)
}

func (h *CourseHandler) Create(c *gin.Context) {
	var input service.CourseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, validator.AsValidationError(err))
		return
	}

	course, err := h.courses.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, course)
}

func (h *CourseHandler) Update(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var input service.CourseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, validator.AsValidationError(err))
		return
	}

	course, err := h.courses.Update(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, course)
}

func (h *CourseHandler) Delete(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if c.Query("confirm") != "true" {
		response.Error(c, apperror.New(http.StatusBadRequest,
			"deleting a course removes all of its lessons, enrollments and reviews; pass confirm=true to proceed",
			apperror.ErrBadRequest))
		return
	}

	if err := h.courses.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, "course deleted")
}
