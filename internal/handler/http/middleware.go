package http

import (
	"net/http"
	"strings"
)

// ContentTypeJSON rejects mutation requests whose body is neither JSON nor
// a multipart upload. Requests without a Content-Type pass through so bare
// DELETEs keep working.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
			ct := r.Header.Get("Content-Type")
			if ct != "" && !strings.HasPrefix(ct, "application/json") && !strings.HasPrefix(ct, "multipart/form-data") {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnsupportedMediaType)
				_, _ = w.Write([]byte(`{"error":{"code":"UNSUPPORTED_MEDIA_TYPE","message":"Content-Type must be application/json or multipart/form-data"}}`))
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
