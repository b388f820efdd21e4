package token

import (
	"time"

	"github.com/fanhub/fanhub-server/internal/model"
)

// EncodeTimed prepends an expires-at field (Unix seconds, uint32) to the
// caller's fields and encodes the whole tuple.
func EncodeTimed(layout string, key []byte, lifetime time.Duration, values ...any) (string, error) {
	expiresAt := uint32(time.Now().Add(lifetime).Unix())
	timed := append([]any{expiresAt}, values...)
	return Encode("I"+layout, key, timed...)
}

// DecodeTimed decodes and checks the leading expiry field, strictly after
// signature verification: a forged token reads as invalid, a legitimate
// stale one as expired. The expiry is stripped from the returned values.
func DecodeTimed(token string, key []byte) ([]any, error) {
	values, err := Decode(token, key)
	if err != nil {
		return nil, err
	}

	expiresAt, ok := values[0].(uint32)
	if !ok {
		return nil, model.ErrInvalidToken
	}
	if int64(expiresAt) < time.Now().Unix() {
		return nil, model.ErrExpiredToken
	}

	return values[1:], nil
}
