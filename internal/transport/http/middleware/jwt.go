package middleware

import (
	"context"
	"net/http"
	"strings"

	"actiowatch/internal/domain"
)

type contextKey string

const SubjectKey contextKey = "subject"

// JWT requires a valid access token from the access_token cookie or a
// bearer header. It lets everything through while auth is disabled.
func JWT(auth domain.AuthService) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !auth.Enabled() {
				next.ServeHTTP(w, r)
				return
			}

			token := ""
			if cookie, err := r.Cookie("access_token"); err == nil {
				token = cookie.Value
			} else if bearer, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
				token = bearer
			}

			if token == "" {
				http.Error(w, "Unauthorized: No token found", http.StatusUnauthorized)
				return
			}

			claims, err := auth.Verify(token)
			if err != nil {
				http.Error(w, "Unauthorized: Invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), SubjectKey, claims["sub"])
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetSubject(ctx context.Context) (string, bool) {
	sub, ok := ctx.Value(SubjectKey).(string)
	return sub, ok
}
