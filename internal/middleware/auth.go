// Package middleware holds the HTTP middleware chain: bearer-token auth,
// request logging, CORS, and request metrics.
package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/smkwon/lifeone/internal/auth"
)

// RequireAuth validates the bearer token on every request before letting it
// through to the API handler.
func RequireAuth(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := bearerToken(r)
			if err != nil {
				unauthorized(w, err)
				return
			}
			if err := jwtManager.Validate(token); err != nil {
				unauthorized(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", auth.ErrMissingToken
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", auth.ErrInvalidToken
	}
	return parts[1], nil
}

func unauthorized(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
