// Package token implements the compact signed-token format: a layout
// descriptor, the packed fields and an HMAC, base64url-joined by dots.
package token

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"encoding/binary"
	"strconv"
	"strings"

	"github.com/fanhub/fanhub-server/internal/model"
)

// A layout descriptor is an ordered list of fixed-width field types:
// "I" is a big-endian uint32, "<n>s" is a byte string of exactly n bytes.
// The descriptor travels in the clear as the first token segment; it is
// covered by the MAC, so tampering with it breaks the signature.

type field struct {
	size  int
	bytes bool // false: uint32
}

func parseLayout(layout string) ([]field, error) {
	var fields []field
	for i := 0; i < len(layout); {
		c := layout[i]
		switch {
		case c == 'I':
			fields = append(fields, field{size: 4})
			i++
		case c >= '0' && c <= '9':
			j := i
			for j < len(layout) && layout[j] >= '0' && layout[j] <= '9' {
				j++
			}
			if j == len(layout) || layout[j] != 's' {
				return nil, model.ErrInvalidToken
			}
			n, err := strconv.Atoi(layout[i:j])
			if err != nil || n <= 0 {
				return nil, model.ErrInvalidToken
			}
			fields = append(fields, field{size: n, bytes: true})
			i = j + 1
		default:
			return nil, model.ErrInvalidToken
		}
	}
	if len(fields) == 0 {
		return nil, model.ErrInvalidToken
	}
	return fields, nil
}

func pack(fields []field, values []any) ([]byte, error) {
	if len(values) != len(fields) {
		return nil, model.ErrInvalidToken
	}
	var body []byte
	for i, f := range fields {
		if f.bytes {
			b, ok := values[i].([]byte)
			if !ok || len(b) != f.size {
				return nil, model.ErrInvalidToken
			}
			body = append(body, b...)
		} else {
			v, ok := values[i].(uint32)
			if !ok {
				return nil, model.ErrInvalidToken
			}
			body = binary.BigEndian.AppendUint32(body, v)
		}
	}
	return body, nil
}

func unpack(fields []field, body []byte) ([]any, error) {
	total := 0
	for _, f := range fields {
		total += f.size
	}
	if len(body) != total {
		return nil, model.ErrInvalidToken
	}
	values := make([]any, 0, len(fields))
	off := 0
	for _, f := range fields {
		if f.bytes {
			b := make([]byte, f.size)
			copy(b, body[off:off+f.size])
			values = append(values, b)
		} else {
			values = append(values, binary.BigEndian.Uint32(body[off:off+4]))
		}
		off += f.size
	}
	return values, nil
}

// Decoding is strict so a token has exactly one textual form: trailing
// padding bits must be zero.
var b64 = base64.URLEncoding.Strict()

func sign(input []byte, key []byte) []byte {
	mac := hmac.New(sha1.New, key)
	mac.Write(input)
	return mac.Sum(nil)
}

// Encode packs values per the layout and returns
// "<layout>.<b64url(body)>.<b64url(mac)>".
func Encode(layout string, key []byte, values ...any) (string, error) {
	fields, err := parseLayout(layout)
	if err != nil {
		return "", err
	}
	body, err := pack(fields, values)
	if err != nil {
		return "", err
	}

	signed := layout + "." + b64.EncodeToString(body)
	mac := b64.EncodeToString(sign([]byte(signed), key))

	return signed + "." + mac, nil
}

// Decode splits the token into exactly three segments, verifies the MAC
// over the first two in constant time, then unpacks the body per the
// declared layout. Any failure is model.ErrInvalidToken.
func Decode(token string, key []byte) ([]any, error) {
	segments := strings.Split(token, ".")
	if len(segments) != 3 {
		return nil, model.ErrInvalidToken
	}

	mac, err := b64.DecodeString(segments[2])
	if err != nil {
		return nil, model.ErrInvalidToken
	}
	signed := segments[0] + "." + segments[1]
	if !hmac.Equal(mac, sign([]byte(signed), key)) {
		return nil, model.ErrInvalidToken
	}

	fields, err := parseLayout(segments[0])
	if err != nil {
		return nil, err
	}
	body, err := b64.DecodeString(segments[1])
	if err != nil {
		return nil, model.ErrInvalidToken
	}

	return unpack(fields, body)
}
