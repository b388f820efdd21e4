package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/fanhub/fanhub-server/internal/apierr"
	restctx "github.com/fanhub/fanhub-server/internal/api/rest/context"
	"github.com/fanhub/fanhub-server/internal/api/rest/handler"
	"github.com/fanhub/fanhub-server/internal/logger"
	"github.com/fanhub/fanhub-server/internal/model"
)

// authScheme is the Authorization header scheme access tokens travel under.
const authScheme = "Token"

// Authenticate resolves the Authorization header into a principal. Requests
// without the header proceed as anonymous; a present but malformed header
// or a bad token fails the request.
type Authenticate struct {
	tokens model.TokenManager
	logger *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokens model.TokenManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokens: tokens, logger: logger}
}

// Wrap returns a handler that authenticates the request before passing it
// on with the principal in context.
func (m *Authenticate) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			ctx := restctx.SetPrincipal(r.Context(), model.Anonymous)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		scheme, value, ok := strings.Cut(header, " ")
		if !ok || scheme != authScheme || value == "" {
			handler.WriteError(w, m.logger, apierr.NewInvalidHeaderValue())
			return
		}

		principal, err := m.tokens.ParseAccessToken(value, restctx.ClientOrigin(r))
		if errors.Is(err, model.ErrExpiredToken) {
			handler.WriteError(w, m.logger, apierr.NewExpiredToken())
			return
		}
		if err != nil {
			m.logger.Debug("Authenticate middleware: token rejected",
				"error", err.Error())
			handler.WriteError(w, m.logger, apierr.NewInvalidToken())
			return
		}

		ctx := restctx.SetPrincipal(r.Context(), principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
