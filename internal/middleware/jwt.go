package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/crucial707/bloglist/internal/auth"
)

type key string

const userIDKey key = "user_id"

// GetUserID returns the authenticated user id stored by RequireToken.
func GetUserID(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(userIDKey).(int)
	return id, ok
}

// WithUserID returns ctx carrying the authenticated user id. Exposed so
// handler tests can simulate an authenticated request.
func WithUserID(ctx context.Context, id int) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// RequireToken rejects requests without a valid bearer token. A missing
// header, a malformed header, and a failed verification all produce the same
// 401 body so clients cannot distinguish the cases.
func RequireToken(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				unauthorized(w)
				return
			}

			userID, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				unauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": "token invalid"})
}
