package service

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// PBKDF2-SHA256 parameters for new password hashes.
const (
	hashIterations = 29000
	hashSaltLen    = 16
	hashKeyLen     = 32
)

// Hasher hashes and verifies passwords with PBKDF2-SHA256, encoded as a
// PHC-style string: $pbkdf2-sha256$<iterations>$<salt>$<key>.
type Hasher struct{}

func NewHasher() *Hasher {
	return &Hasher{}
}

// Hash produces a salted hash of the password.
func (h *Hasher) Hash(password string) (string, error) {
	salt := make([]byte, hashSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := pbkdf2.Key([]byte(password), salt, hashIterations, hashKeyLen, sha256.New)

	return fmt.Sprintf("$pbkdf2-sha256$%d$%s$%s",
		hashIterations,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify reports whether the password matches the encoded hash. A malformed
// hash verifies as false; the caller cannot distinguish it from a mismatch.
func (h *Hasher) Verify(password, encoded string) bool {
	parts := strings.Split(encoded, "$")
	if len(parts) != 5 || parts[1] != "pbkdf2-sha256" {
		return false
	}

	var iterations int
	if _, err := fmt.Sscanf(parts[2], "%d", &iterations); err != nil || iterations <= 0 {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[3])
	if err != nil {
		return false
	}

	expected, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(expected) == 0 {
		return false
	}

	computed := pbkdf2.Key([]byte(password), salt, iterations, len(expected), sha256.New)

	return subtle.ConstantTimeCompare(computed, expected) == 1
}
