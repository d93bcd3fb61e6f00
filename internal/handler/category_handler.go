package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unlockedcoding/backend/internal/service"
	"github.com/unlockedcoding/backend/pkg/apperror"
	"github.com/unlockedcoding/backend/pkg/response"
	"github.com/unlockedcoding/backend/pkg/validator"
)

type CategoryHandler struct {
	categories service.CategoryService
	courses    service.CourseService
}

func NewCategoryHandler(categories service.CategoryService, courses service.CourseService) *CategoryHandler {
	return &CategoryHandler{categories: categories, courses: courses}
}

func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categories.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) GetBySlug(c *gin.Context) {
	category, err := h.categories.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) ListCourses(c *gin.Context) {
	courses, err := h.courses.ListByCategorySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, courses)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var input service.CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, validator.AsValidationError(err))
		return
	}

	category, err := h.categories.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var input service.CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, validator.AsValidationError(err))
		return
	}

	category, err := h.categories.Update(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

// Delete cascades through the category's courses. The irreversible scope of
// the cascade is the reason for the confirm query flag.
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if c.Query("confirm") != "true" {
		response.Error(c, apperror.New(http.StatusBadRequest,
			"deleting a category removes all of its courses, lessons, enrollments and reviews; pass confirm=true to proceed",
			apperror.ErrBadRequest))
		return
	}

	if err := h.categories.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, "category deleted")
}
