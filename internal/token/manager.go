package token

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/subtle"
	"time"

	"github.com/google/uuid"

	"github.com/fanhub/fanhub-server/internal/model"
)

const (
	// Caller-visible field layouts; the timed codec prepends the expiry.
	accessLayout  = "I4s"  // account id, origin fingerprint
	refreshLayout = "I16s" // account id, revocation nonce

	fingerprintLen = 4

	AccessTTL  = 10 * time.Minute
	RefreshTTL = 28 * 24 * time.Hour
)

// Manager implements model.TokenManager over the timed codec. Access and
// refresh tokens are signed with distinct keys; the origin fingerprint
// uses a third secret so it cannot be related to either signature.
type Manager struct {
	accessKey  []byte
	refreshKey []byte
	originKey  []byte
}

// NewManager creates a Manager with the three configured secrets.
func NewManager(accessKey, refreshKey, originKey []byte) model.TokenManager {
	return &Manager{accessKey: accessKey, refreshKey: refreshKey, originKey: originKey}
}

// fingerprint derives the origin binding from the client's reported
// network origin with a keyed hash, truncated to the token field width.
func (m *Manager) fingerprint(origin string) []byte {
	mac := hmac.New(sha1.New, m.originKey)
	mac.Write([]byte(origin))
	return mac.Sum(nil)[:fingerprintLen]
}

// MintAccessToken issues a short-lived token bound to the client origin.
func (m *Manager) MintAccessToken(accountID int64, origin string) (string, error) {
	return EncodeTimed(accessLayout, m.accessKey, AccessTTL,
		uint32(accountID), m.fingerprint(origin))
}

// MintRefreshToken issues a long-lived token bound to the account's
// current revocation nonce.
func (m *Manager) MintRefreshToken(accountID int64, nonce uuid.UUID) (string, error) {
	nonceBytes := make([]byte, len(nonce))
	copy(nonceBytes, nonce[:])
	return EncodeTimed(refreshLayout, m.refreshKey, RefreshTTL,
		uint32(accountID), nonceBytes)
}

// ParseAccessToken verifies the token and its origin binding and returns
// the account id. A fingerprint mismatch is indistinguishable from a bad
// signature.
func (m *Manager) ParseAccessToken(token, origin string) (int64, error) {
	values, err := DecodeTimed(token, m.accessKey)
	if err != nil {
		return 0, err
	}
	if len(values) != 2 {
		return 0, model.ErrInvalidToken
	}
	accountID, ok := values[0].(uint32)
	if !ok {
		return 0, model.ErrInvalidToken
	}
	fp, ok := values[1].([]byte)
	if !ok {
		return 0, model.ErrInvalidToken
	}
	if subtle.ConstantTimeCompare(fp, m.fingerprint(origin)) != 1 {
		return 0, model.ErrInvalidToken
	}
	return int64(accountID), nil
}

// ParseRefreshToken verifies the token and returns the account id and the
// embedded revocation nonce for the caller to compare against the stored
// one.
func (m *Manager) ParseRefreshToken(token string) (int64, uuid.UUID, error) {
	values, err := DecodeTimed(token, m.refreshKey)
	if err != nil {
		return 0, uuid.Nil, err
	}
	if len(values) != 2 {
		return 0, uuid.Nil, model.ErrInvalidToken
	}
	accountID, ok := values[0].(uint32)
	if !ok {
		return 0, uuid.Nil, model.ErrInvalidToken
	}
	nonceBytes, ok := values[1].([]byte)
	if !ok {
		return 0, uuid.Nil, model.ErrInvalidToken
	}
	nonce, err := uuid.FromBytes(nonceBytes)
	if err != nil {
		return 0, uuid.Nil, model.ErrInvalidToken
	}
	return int64(accountID), nonce, nil
}
