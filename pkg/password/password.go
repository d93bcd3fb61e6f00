package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

const (
	saltLen = 16
	keyLen  = 64

	scryptN = 32768
	scryptR = 8
	scryptP = 1
)

// Hash derives a scrypt key from the password under a fresh random salt and
// returns it encoded as "<hex key>.<hex salt>".
func Hash(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, keyLen)
	if err != nil {
		return "", fmt.Errorf("failed to derive key: %w", err)
	}

	return hex.EncodeToString(key) + "." + hex.EncodeToString(salt), nil
}

// Verify re-derives the key for the supplied password using the salt embedded
// in stored and compares in constant time. A malformed stored value is an
// error, not a failed match.
func Verify(supplied, stored string) (bool, error) {
	keyHex, saltHex, ok := strings.Cut(stored, ".")
	if !ok {
		return false, fmt.Errorf("stored hash is malformed: missing salt delimiter")
	}

	storedKey, err := hex.DecodeString(keyHex)
	if err != nil {
		return false, fmt.Errorf("stored hash is malformed: %w", err)
	}
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false, fmt.Errorf("stored salt is malformed: %w", err)
	}

	suppliedKey, err := scrypt.Key([]byte(supplied), salt, scryptN, scryptR, scryptP, len(storedKey))
	if err != nil {
		return false, fmt.Errorf("failed to derive key: %w", err)
	}

	return subtle.ConstantTimeCompare(storedKey, suppliedKey) == 1, nil
}
