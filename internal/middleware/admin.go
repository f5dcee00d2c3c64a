package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"

	"github.com/AdamBeresnev/draft-pool/internal/pool"
)

type ContextKey string

const (
	AdminKey    ContextKey = "admin"
	AdminKeyVal ContextKey = "adminKey"
)

// KeyParam is the query parameter carrying the shared admin key.
const KeyParam = "key"

// LoadAdmin grants the admin capability to requests whose ?key= matches adminKey.
// It never rejects anything; RequireAdmin does that.
func LoadAdmin(adminKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.URL.Query().Get(KeyParam)
			if key == "" || adminKey == "" || subtle.ConstantTimeCompare([]byte(key), []byte(adminKey)) != 1 {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), AdminKey, pool.GrantAdmin())
			ctx = context.WithValue(ctx, AdminKeyVal, key)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin sends anyone without the admin key back to the standings page.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !GetAdmin(r.Context()).Granted() {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func GetAdmin(ctx context.Context) pool.AdminContext {
	admin, _ := ctx.Value(AdminKey).(pool.AdminContext)
	return admin
}

// GetAdminKey returns the key the request was granted with, so links can carry it along.
func GetAdminKey(ctx context.Context) string {
	key, _ := ctx.Value(AdminKeyVal).(string)
	return key
}
