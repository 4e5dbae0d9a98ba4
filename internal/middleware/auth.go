package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/Lixing-Zhang/final-order-relay/internal/config"
)

// InternalTokenHeader carries the shared secret on server-to-server calls.
const InternalTokenHeader = "x-internal-token"

// InternalTokenAuth middleware validates the shared secret from header.
// A missing header, a mismatch and an unset secret all get 403.
func InternalTokenAuth(cfg config.AuthConfig) func(next http.Handler) http.Handler {
	expected := []byte(cfg.InternalToken)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(InternalTokenHeader)

			if token == "" || len(expected) == 0 ||
				subtle.ConstantTimeCompare([]byte(token), expected) != 1 {
				forbidden(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func forbidden(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "Forbidden"})
}
