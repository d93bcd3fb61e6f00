package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unlockedcoding/backend/internal/middleware"
	"github.com/unlockedcoding/backend/internal/service"
	"github.com/unlockedcoding/backend/pkg/response"
	"github.com/unlockedcoding/backend/pkg/validator"
)

type EnrollmentHandler struct {
	service service.EnrollmentService
}

func NewEnrollmentHandler(service service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{service: service}
}

func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	courseID, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	enrollment, err := h.service.Enroll(c.Request.Context(), identity.UserID, courseID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, enrollment)
}

func (h *EnrollmentHandler) Get(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	courseID, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	enrollment, err := h.service.Get(c.Request.Context(), identity.UserID, courseID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, enrollment)
}

type progressInput struct {
	Progress *int `json:"progress" binding:"required"`
}

func (h *EnrollmentHandler) SetProgress(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	courseID, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var input progressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, validator.AsValidationError(err))
		return
	}

	enrollment, err := h.service.SetProgress(c.Request.Context(), identity.UserID, courseID, *input.Progress)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, enrollment)
}

func (h *EnrollmentHandler) ListOwn(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	enrollments, err := h.service.ListForUser(c.Request.Context(), identity.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, enrollments)
}
