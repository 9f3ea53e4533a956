package handler

import (
	"net/http"

	"github.com/WanderLanka/wanderlanka-web-app-sub001/session"
)

// LoginPath is where guarded routes send sessions that fail the check.
const LoginPath = "/login"

// RequireRoles gates a route subtree on the route guard: the request passes
// only when a token is present and the resolved role is in the allowed set.
// Denial is a redirect to the login route, not an error page, discarding the
// current navigation entry the way the web client's replace-navigation did.
// The guard re-reads the vault on every request, so an eviction is noticed
// on the next route transition.
func RequireRoles(guard *session.Guard, allowed ...session.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !guard.Allow(r.Context(), allowed...) {
				http.Redirect(w, r, LoginPath, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ContentTypeJSON enforces that requests with a body have
// Content-Type: application/json.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > 0 {
			ct := r.Header.Get("Content-Type")
			if ct != "" && ct != "application/json" && ct != "application/json; charset=utf-8" {
				http.Error(w, "unsupported media type", http.StatusUnsupportedMediaType)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
