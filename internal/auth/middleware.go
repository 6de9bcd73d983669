package auth

import (
	"net/http"
	"strings"

	"inanisgarage/internal/models"
)

// UserLookup is the slice of the record store the middleware needs: a token
// stays valid only while its account still exists.
type UserLookup interface {
	GetUser(username string) (models.User, bool)
}

func JWTAuth(users UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if !strings.HasPrefix(h, "Bearer ") {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}
			raw := strings.TrimPrefix(h, "Bearer ")
			claims, err := Verify(raw)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
			u, ok := users.GetUser(claims.Subject)
			if !ok {
				http.Error(w, "account not found", http.StatusUnauthorized)
				return
			}
			// The account's current role wins over whatever the token
			// was signed with.
			claims.Role = u.Role
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !FromContext(r.Context()).IsAdmin() {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
