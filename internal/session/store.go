package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a token does not resolve to a live session,
// whether it never existed, was destroyed by logout, or has expired.
var ErrNotFound = errors.New("session not found")

// Store persists server-side sessions keyed by an opaque token. The token is
// the only thing the client ever holds; destroying it ends the session
// immediately on every node.
type Store interface {
	Create(ctx context.Context, userID uuid.UUID, ttl time.Duration) (string, error)
	Resolve(ctx context.Context, token string) (uuid.UUID, error)
	Destroy(ctx context.Context, token string) error
}

func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
