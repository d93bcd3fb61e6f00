package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unlockedcoding/backend/internal/middleware"
	"github.com/unlockedcoding/backend/internal/service"
	"github.com/unlockedcoding/backend/pkg/response"
	"github.com/unlockedcoding/backend/pkg/validator"
)

type ProfileHandler struct {
	service service.ProfileService
}

func NewProfileHandler(service service.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

func (h *ProfileHandler) GetOwn(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	profile, err := h.service.Get(c.Request.Context(), identity.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) Upsert(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	var input service.ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, validator.AsValidationError(err))
		return
	}

	profile, err := h.service.Upsert(c.Request.Context(), identity.UserID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
