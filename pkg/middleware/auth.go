package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
)

// AdminKeyHeader is the header carrying the admin API key.
const AdminKeyHeader = "X-Admin-Key"

// AdminKey returns middleware that guards admin routes with a static API key.
// The comparison is constant-time. An empty configured key disables the check,
// which is only intended for local development.
func AdminKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			provided := r.Header.Get(AdminKeyHeader)
			if subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
				writeAuthError(w, "invalid or missing admin key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"code":    "UNAUTHORIZED",
		"message": message,
	})
}
