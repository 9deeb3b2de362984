package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"pulsewatch/internal/apperrors"
	"pulsewatch/internal/auth"
)

type key string

const contextUserIDKey key = "user_id"

// UserIDFromContext returns the verified subject placed by AuthMiddleware.
func UserIDFromContext(ctx context.Context) (string, bool) {
	uid, ok := ctx.Value(contextUserIDKey).(string)
	return uid, ok
}

// AuthMiddleware rejects requests without a valid bearer token and makes
// the verified user id available on the request context.
func AuthMiddleware(verifier *auth.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				respondAuthError(w, apperrors.ErrUnauthenticated)
				return
			}

			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			userID, err := verifier.Verify(tokenStr)
			if err != nil {
				respondAuthError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), contextUserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func respondAuthError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
