package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/and161185/gas2door/internal/auth"
	"go.uber.org/zap"
)

type contextKey string

const VisitorContextKey contextKey = "visitor"

const (
	VisitorCookie = "gas2door_visitor"
	VisitorHeader = "X-Visitor-Token"
)

// VisitorMiddleware identifies the browser behind a request. A visitor token
// is read from the cookie, the X-Visitor-Token header or a Bearer header; a browser without a valid one
// gets a fresh identity in both the cookie and the response header.
func VisitorMiddleware(tm *auth.TokenManager, logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			visitorID, err := tm.ParseToken(visitorToken(r))
			if err != nil {
				var token string
				visitorID, token, err = tm.NewVisitor()
				if err != nil {
					logger.Errorf("issue visitor token: %v", err)
					http.Error(w, "internal error", http.StatusInternalServerError)
					return
				}

				http.SetCookie(w, &http.Cookie{
					Name:     VisitorCookie,
					Value:    token,
					Path:     "/",
					MaxAge:   int(auth.VisitorTTL.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
				w.Header().Set(VisitorHeader, token)
			}

			ctx := context.WithValue(r.Context(), VisitorContextKey, visitorID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func VisitorFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(VisitorContextKey).(string)
	return id, ok && id != ""
}

func visitorToken(r *http.Request) string {
	if c, err := r.Cookie(VisitorCookie); err == nil && c.Value != "" {
		return c.Value
	}
	if token := r.Header.Get(VisitorHeader); token != "" {
		return token
	}
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}
