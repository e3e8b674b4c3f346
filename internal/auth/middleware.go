package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"dashboard/internal/apiclient"
)

type TokenVerifier interface {
	Verify(token string) (string, error)
}

type ctxKeyUserID struct{}

func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKeyUserID{}).(string)
	return id, ok
}

func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxKeyUserID{}, userID)
}

// RequireSession guards the dashboard pages. Requests without a valid
// session cookie are sent to the login page.
func RequireSession(verifier TokenVerifier, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := apiclient.CookieTokenSource{Request: r}.Token()
			if !ok {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			userID, err := verifier.Verify(token)
			if err != nil {
				logger.Debug("rejected session cookie", zap.String("path", r.URL.Path), zap.Error(err))
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithUserID(r.Context(), userID)))
		})
	}
}

// RequireBearer guards the JSON API. The token comes from the Authorization
// header or, failing that, the session cookie.
func RequireBearer(verifier TokenVerifier, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				writeUnauthorized(w, logger)
				return
			}

			userID, err := verifier.Verify(token)
			if err != nil {
				logger.Debug("rejected bearer token", zap.String("path", r.URL.Path), zap.Error(err))
				writeUnauthorized(w, logger)
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithUserID(r.Context(), userID)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		return token, token != ""
	}
	return apiclient.CookieTokenSource{Request: r}.Token()
}

func writeUnauthorized(w http.ResponseWriter, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"error":   "UNAUTHORIZED",
		"message": "authentication required",
	}); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}
