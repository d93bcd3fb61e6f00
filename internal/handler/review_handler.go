package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unlockedcoding/backend/internal/middleware"
	"github.com/unlockedcoding/backend/internal/service"
	"github.com/unlockedcoding/backend/pkg/response"
	"github.com/unlockedcoding/backend/pkg/validator"
)

type ReviewHandler struct {
	service service.ReviewService
}

func NewReviewHandler(service service.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

func (h *ReviewHandler) ListByCourse(c *gin.Context) {
	courseID, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	reviews, err := h.service.ListByCourse(c.Request.Context(), courseID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHandler) Create(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	courseID, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var input service.ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, validator.AsValidationError(err))
		return
	}

	review, err := h.service.Create(c.Request.Context(), identity, courseID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandler) Update(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var input service.ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, validator.AsValidationError(err))
		return
	}

	review, err := h.service.Update(c.Request.Context(), identity, id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), identity, id); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, "review deleted")
}
