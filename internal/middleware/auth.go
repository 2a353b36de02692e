package middleware

import (
	"context"
	"net/http"

	"pizzaria-pdv-services/internal/auth"
	"pizzaria-pdv-services/pkg/response"
)

type contextKey string

const authContextKey contextKey = "authContext"

func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, authContextKey, claims)
}

func GetClaims(ctx context.Context) (*auth.Claims, bool) {
	value := ctx.Value(authContextKey)
	if value == nil {
		return nil, false
	}
	claims, ok := value.(*auth.Claims)
	return claims, ok
}

// AdminAuth protects the back-office surface (archive, history, menu
// editing, sangria). Any valid token passes; role checks stay with the
// handlers that care.
func AdminAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				response.Error(w, http.StatusForbidden, "UNAUTHORIZED", "Admin access is disabled")
				return
			}

			token := auth.ParseBearerToken(r.Header.Get("Authorization"))
			claims, err := auth.VerifyToken(token, secret)
			if err != nil {
				response.Error(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}
