package server

import (
	"context"
	"crypto/subtle"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/playperu/arcade/internal/config"
)

type ctxKey int

const (
	ctxKeySession ctxKey = iota
	ctxKeyAdmin
)

func sessionMiddleware(sessions *Sessions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := sessions.Get(chi.URLParam(r, "id"))
			if err != nil {
				writeError(w, http.StatusNotFound, "session not found")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeySession, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// adminAuthMiddleware checks HTTP basic credentials against the configured
// bcrypt hash. Without a hash the admin API does not exist.
func adminAuthMiddleware(admin config.Admin) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if admin.PasswordHash == "" {
				writeError(w, http.StatusNotFound, "admin api disabled")
				return
			}

			user, pass, ok := r.BasicAuth()
			if !ok || subtle.ConstantTimeCompare([]byte(user), []byte(admin.User)) != 1 {
				unauthorized(w)
				return
			}
			if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(pass)); err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyAdmin, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Basic realm="arcade admin"`)
	writeError(w, http.StatusUnauthorized, "not authenticated")
}

func sessionFrom(r *http.Request) *session {
	return r.Context().Value(ctxKeySession).(*session)
}

func adminFrom(r *http.Request) string {
	return r.Context().Value(ctxKeyAdmin).(string)
}
