package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"authgate/internal/common"
	"authgate/internal/common/security"
)

type contextKey string

const claimsCtxKey contextKey = "authClaims"

// Authenticator gates requests whose path starts with one of the protected
// prefixes. It extracts the bearer token, runs it through the verifier, and
// either binds the verified claims to the request context or rejects the
// request before it reaches a handler. Rejection status follows the fault
// kind: bad credential 401, verifier unreachable 503, anything unexpected a
// generic 500.
func Authenticator(verifier security.TokenVerifier, protectedPaths []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isProtectedPath(r.URL.Path, protectedPaths) {
				next.ServeHTTP(w, r)
				return
			}

			tokenString, err := security.BearerFromHeader(r.Header.Get("Authorization"))
			if err != nil {
				common.RespondWithAuthError(w, err.Error())
				return
			}

			claims, err := verifier.Verify(r.Context(), tokenString)
			if err != nil {
				switch {
				case errors.Is(err, common.ErrUnauthorized):
					common.RespondWithAuthError(w, err.Error())
				case errors.Is(err, common.ErrServiceUnavailable):
					common.RespondWithError(w, http.StatusServiceUnavailable, err.Error())
				default:
					common.RespondWithError(w, http.StatusInternalServerError, "Authentication error")
				}
				return
			}

			ctx := context.WithValue(r.Context(), claimsCtxKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func isProtectedPath(path string, protectedPaths []string) bool {
	for _, prefix := range protectedPaths {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// ClaimsFromContext reads the identity the gate bound to the request.
// ok is false when the gate never ran for this request, which is a
// mis-mounted handler rather than a client credential problem.
func ClaimsFromContext(ctx context.Context) (*security.Claims, bool) {
	claims, ok := ctx.Value(claimsCtxKey).(*security.Claims)
	return claims, ok
}
