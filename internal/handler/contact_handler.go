package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unlockedcoding/backend/internal/service"
	"github.com/unlockedcoding/backend/pkg/response"
	"github.com/unlockedcoding/backend/pkg/validator"
)

type ContactHandler struct {
	service service.ContactService
}

func NewContactHandler(service service.ContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

func (h *ContactHandler) Submit(c *gin.Context) {
	var input service.ContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, validator.AsValidationError(err))
		return
	}

	submission, err := h.service.Submit(c.Request.Context(), c.ClientIP(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, submission)
}

func (h *ContactHandler) List(c *gin.Context) {
	submissions, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, submissions)
}

func (h *ContactHandler) Get(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	submission, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, submission)
}

func (h *ContactHandler) MarkRead(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, "submission marked as read")
}

func (h *ContactHandler) Delete(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, "submission deleted")
}
