package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/unlockedcoding/backend/internal/middleware"
	"github.com/unlockedcoding/backend/internal/service"
	"github.com/unlockedcoding/backend/pkg/response"
	"github.com/unlockedcoding/backend/pkg/validator"
)

// SessionCookie controls how the opaque session token is delivered.
type SessionCookie struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

type AuthHandler struct {
	service service.AuthService
	cookie  SessionCookie
}

func NewAuthHandler(service service.AuthService, cookie SessionCookie) *AuthHandler {
	return &AuthHandler{service: service, cookie: cookie}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var input service.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, validator.AsValidationError(err))
		return
	}

	user, token, err := h.service.Register(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input service.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, validator.AsValidationError(err))
		return
	}

	user, token, err := h.service.Login(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	token, err := c.Cookie(h.cookie.Name)
	if err == nil && token != "" {
		if err := h.service.Logout(c.Request.Context(), token); err != nil {
			response.Error(c, err)
			return
		}
	}

	// Expire the cookie regardless of whether a session was found.
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
	response.Message(c, http.StatusOK, "logged out")
}

func (h *AuthHandler) CurrentUser(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	user, err := h.service.CurrentUser(c.Request.Context(), identity.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(h.cookie.Name, token, int(h.cookie.TTL.Seconds()), "/", "", h.cookie.Secure, true)
}
