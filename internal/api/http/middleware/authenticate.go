package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dtroode/aboh-server/internal/api/http/response"
	"github.com/dtroode/aboh-server/internal/logger"
	"github.com/dtroode/aboh-server/internal/model"
)

// UserResolver maps a bearer token to the user it was issued for.
type UserResolver interface {
	ResolveCurrentUser(ctx context.Context, token string) (model.User, error)
}

// Authenticate validates bearer tokens and injects the current user into context.
type Authenticate struct {
	resolver       UserResolver
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(resolver UserResolver, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{resolver: resolver, contextManager: contextManager, logger: logger}
}

// Handle rejects requests without a valid bearer token with 401.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			response.Unauthorized(w, response.MsgNotAuthenticated)
			return
		}

		user, err := m.resolver.ResolveCurrentUser(r.Context(), token)
		if err != nil {
			if errors.Is(err, model.ErrUnauthorized) {
				response.Unauthorized(w, response.MsgInvalidCredentials)
				return
			}
			m.logger.Error("Authenticate middleware: failed to resolve user",
				"path", r.URL.Path,
				"error", err.Error())
			response.Error(w, http.StatusInternalServerError, response.MsgInternalServerError)
			return
		}

		next.ServeHTTP(w, r.WithContext(m.contextManager.SetUserToContext(r.Context(), user)))
	})
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
