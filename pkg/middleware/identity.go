package middleware

import (
	"context"
	"net/http"
)

type contextKey string

const userIDKey contextKey = "user_id"

// Identity extracts the caller's user ID from the X-User-ID header set by
// the upstream auth layer and stores it in the request context. Requests
// without the header pass through anonymously; handlers that need identity
// reject them individually.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID := r.Header.Get("X-User-ID"); userID != "" {
			ctx := context.WithValue(r.Context(), userIDKey, userID)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

// UserIDFromContext returns the authenticated user ID, or "" for anonymous
// requests.
func UserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}
