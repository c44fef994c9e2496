package transport

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/muhammadheryan/identity-service/application/token"
	"github.com/muhammadheryan/identity-service/constant"
	utilsContext "github.com/muhammadheryan/identity-service/utils/context"
	"github.com/muhammadheryan/identity-service/utils/errors"
)

// AuthMiddleware returns a middleware that validates bearer tokens with the issuer.
// Public endpoints (auth flows, swagger, health) pass through without a token.
func AuthMiddleware(issuer token.Issuer) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			auth := r.Header.Get("Authorization")
			if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
				writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
				return
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			claims, err := issuer.Validate(r.Context(), raw)
			if err != nil {
				writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
				return
			}

			ctx := utilsContext.WithAccount(r.Context(), claims.Subject, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects authenticated callers holding a different role.
func RequireRole(role constant.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, ok := utilsContext.GetRole(r.Context())
			if !ok {
				writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
				return
			}
			if got != role {
				writeError(w, errors.SetCustomError(constant.ErrForbidden))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// isPublicPath defines which endpoints are public (no auth required)
func isPublicPath(path string) bool {
	if strings.HasPrefix(path, "/swagger/") || path == "/health" || path == "/metrics" {
		return true
	}
	if strings.HasSuffix(path, "/profile") {
		return false
	}
	return strings.HasPrefix(path, "/api/auth/") || strings.HasPrefix(path, "/api/admin/")
}
