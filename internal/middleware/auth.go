package middleware

import (
	"context"
	"net/http"
	"strings"

	"launchpad-api/internal/apperr"
	"launchpad-api/internal/auth"
	"launchpad-api/internal/transport"
)

type identityKey struct{}

// Authenticate requires a valid bearer token and attaches its Identity to the
// request context.
func Authenticate(manager *auth.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				transport.WriteError(w, apperr.Unauthorized("Authentication required"))
				return
			}
			if manager == nil {
				transport.WriteError(w, apperr.Unauthorized("Invalid or expired token").WithDetails("token verification not configured"))
				return
			}
			id, err := manager.Parse(token)
			if err != nil {
				transport.WriteError(w, apperr.Unauthorized("Invalid or expired token").WithDetails(err.Error()))
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// RequireAdmin must run after Authenticate.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFrom(r.Context())
		if !ok || !id.IsAdmin() {
			transport.WriteError(w, apperr.Forbidden("Forbidden"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func WithIdentity(ctx context.Context, id auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom returns the caller identity; anonymous callers get the zero value.
func IdentityFrom(ctx context.Context) (auth.Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(auth.Identity)
	return id, ok
}

func bearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if token == "" {
		return "", false
	}
	return token, true
}
