package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/unlockedcoding/backend/internal/repository"
	"github.com/unlockedcoding/backend/internal/session"
)

const identityKey = "identity"

// Identity is the resolved caller, threaded explicitly from the boundary into
// service calls. Handlers never reach into ambient state beyond this value.
type Identity struct {
	UserID   uuid.UUID
	Username string
	IsAdmin  bool
}

type AuthMiddleware struct {
	sessions   session.Store
	users      repository.UserRepository
	cookieName string
}

func NewAuthMiddleware(sessions session.Store, users repository.UserRepository, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{
		sessions:   sessions,
		users:      users,
		cookieName: cookieName,
	}
}

// Resolve attaches the caller's Identity to the request context when a valid
// session cookie is present. It never aborts; the Require* guards do that.
func (m *AuthMiddleware) Resolve() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(m.cookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		userID, err := m.sessions.Resolve(c.Request.Context(), token)
		if err != nil {
			c.Next()
			return
		}

		user, err := m.users.FindByID(c.Request.Context(), userID)
		if err != nil {
			c.Next()
			return
		}

		c.Set(identityKey, Identity{
			UserID:   user.ID,
			Username: user.Username,
			IsAdmin:  user.IsAdmin,
		})
		c.Next()
	}
}

// RequireAuth short-circuits with 401 when no valid session is attached.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentIdentity(c); !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin short-circuits with 403 for authenticated non-admin callers.
// It assumes RequireAuth runs first.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := CurrentIdentity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}
		if !identity.IsAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentIdentity returns the caller identity resolved by Resolve.
func CurrentIdentity(c *gin.Context) (Identity, bool) {
	val, exists := c.Get(identityKey)
	if !exists {
		return Identity{}, false
	}
	identity, ok := val.(Identity)
	return identity, ok
}
