// Package context carries the authenticated principal through a request
// and derives the client origin tokens bind to.
package context

import (
	"context"
	"net"
	"net/http"

	"github.com/fanhub/fanhub-server/internal/model"
)

type principalKey struct{}

// SetPrincipal returns a context carrying the authenticated account id.
func SetPrincipal(ctx context.Context, principal int64) context.Context {
	return context.WithValue(ctx, principalKey{}, principal)
}

// Principal returns the account id the authentication middleware resolved,
// or model.Anonymous when the request carried no token.
func Principal(ctx context.Context) int64 {
	if principal, ok := ctx.Value(principalKey{}).(int64); ok {
		return principal
	}
	return model.Anonymous
}

// ClientOrigin reports the network origin access tokens bind to: the
// X-Real-IP header when the reverse proxy sets it, otherwise the peer
// address.
func ClientOrigin(r *http.Request) string {
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
