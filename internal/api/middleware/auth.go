package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"net/url"

	"medicamp_api/internal/common"
	"medicamp_api/internal/common/security"
	"medicamp_api/internal/domain/model"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const EmailCtxKey contextKey = "email"

// Authenticator rejects requests that carry no valid token and stores the
// token's email in the request context. It expects jwtauth.Verifier upstream.
func Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			if errors.Is(err, jwtauth.ErrNoTokenFound) || token == nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Authorization token required")
			} else {
				common.RespondWithError(w, http.StatusUnauthorized, "Invalid token: "+err.Error())
			}
			return
		}
		if token == nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		email, err := security.GetEmailFromClaims(claims)
		if err != nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims: "+err.Error())
			return
		}

		ctx := context.WithValue(r.Context(), EmailCtxKey, email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OwnerOnly lets a request through only when the token email equals the
// named URL parameter.
func OwnerOnly(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, ok := GetEmailFromContext(r.Context())
			if !ok {
				common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
				return
			}
			if EmailParam(r, param) != email {
				common.RespondWithError(w, http.StatusForbidden, "forbidden access")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// EmailParam returns the named URL parameter percent-decoded, so
// "alice%40example.com" and "alice@example.com" address the same user.
// A malformed escape is returned as-is.
func EmailParam(r *http.Request, name string) string {
	raw := chi.URLParam(r, name)
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// RoleResolver looks up the stored role of a user.
type RoleResolver interface {
	RoleOf(ctx context.Context, email string) (string, error)
}

// AdminOnly checks the stored role of the token's user. Token claims are not
// consulted because tokens are issued for any submitted email.
func AdminOnly(resolver RoleResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, ok := GetEmailFromContext(r.Context())
			if !ok {
				common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
				return
			}
			role, err := resolver.RoleOf(r.Context(), email)
			if err != nil {
				log.Printf("ERROR: role lookup for %s: %v", email, err)
				common.RespondWithErr(w, err)
				return
			}
			if role != model.RoleAdmin {
				common.RespondWithError(w, http.StatusForbidden, "Admin access required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetEmailFromContext returns the authenticated email.
func GetEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(EmailCtxKey).(string)
	return email, ok && email != ""
}
