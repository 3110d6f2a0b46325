// Package middleware holds the cross-cutting HTTP wrappers: actor
// attribution and request metrics.
package middleware

import (
	"context"
	"net/http"

	"github.com/MaximoMartin/celebrae-booking-engine/internal/api/handlers"
)

type contextKey string

const userIDKey contextKey = "userID"

// HeaderUserID carries the authenticated actor set by the API gateway.
const HeaderUserID = "X-User-ID"

// Auth requires the X-User-ID header and stores its value in the request
// context. Identity verification happens upstream; this service only
// attributes actions.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(HeaderUserID)
		if userID == "" {
			handlers.RespondUnauthorized(w, "missing "+HeaderUserID+" header")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID returns the actor stored by Auth.
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok
}
