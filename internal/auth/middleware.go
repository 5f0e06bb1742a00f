package auth

import (
	"net/http"
	"strings"

	"github.com/formhive/formhive/internal/rbac"
)

// JWTMiddleware validates the bearer token and puts subject and claim role
// into the request context. AttachRoleFromDB may override the role with the
// authoritative users-table value further down the chain.
func JWTMiddleware(a *AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if !strings.HasPrefix(h, "Bearer ") {
				http.Error(w, "missing bearer", http.StatusUnauthorized)
				return
			}
			claims, err := a.Parse(strings.TrimPrefix(h, "Bearer "))
			if err != nil || claims == nil {
				http.Error(w, "bad token", http.StatusUnauthorized)
				return
			}
			ctx := WithSubject(r.Context(), claims.Sub)
			ctx = rbac.WithRole(ctx, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalJWT parses a bearer token when present but never rejects: public
// quiz serving and anonymous submissions share routes with logged-in users.
func OptionalJWT(a *AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if strings.HasPrefix(h, "Bearer ") {
				if claims, err := a.Parse(strings.TrimPrefix(h, "Bearer ")); err == nil && claims != nil {
					ctx := WithSubject(r.Context(), claims.Sub)
					ctx = rbac.WithRole(ctx, claims.Role)
					r = r.WithContext(ctx)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
