package model

import "github.com/google/uuid"

// TokenManager mints and verifies the two token classes. Access tokens
// bind an account to a client origin fingerprint; refresh tokens bind an
// account to its revocation nonce. The classes are signed with distinct
// keys so compromise of one cannot forge the other.
type TokenManager interface {
	MintAccessToken(accountID int64, origin string) (string, error)
	MintRefreshToken(accountID int64, nonce uuid.UUID) (string, error)
	// ParseAccessToken verifies signature, expiry and the origin binding.
	ParseAccessToken(token, origin string) (int64, error)
	// ParseRefreshToken verifies signature and expiry and returns the
	// embedded nonce; the caller compares it to the stored one.
	ParseRefreshToken(token string) (int64, uuid.UUID, error)
}
