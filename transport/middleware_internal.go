package transport

import (
	"net/http"

	"github.com/muhammadheryan/identity-service/constant"
	"github.com/muhammadheryan/identity-service/utils/errors"
)

// InternalMiddleware checks for static API key in header. An empty key disables the endpoint.
func InternalMiddleware(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if apiKey == "" || r.Header.Get("Authorization") != "Bearer "+apiKey {
				writeError(w, errors.SetCustomError(constant.ErrForbidden))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
