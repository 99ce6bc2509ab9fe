package middleware

import (
	"context"
	"net/http"
	"net/url"

	"github.com/parvez-irfan/BlogSite/internal/models"
	"github.com/parvez-irfan/BlogSite/internal/repo"
	"github.com/parvez-irfan/BlogSite/internal/session"
)

type key string

const userKey key = "user"

// CurrentUser resolves the session cookie to a User and stores it in the
// request context. Anonymous requests pass through with no user; a cookie
// whose account was deleted is treated as anonymous.
func CurrentUser(sessions *session.Manager, users *repo.UserRepo) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := sessions.UserID(r)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.GetByID(r.Context(), id)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// WithUser returns a context carrying user as the authenticated user.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUser returns the authenticated user from the request context, or nil.
func GetUser(ctx context.Context) *models.User {
	user, ok := ctx.Value(userKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}

// RequireUser redirects anonymous requests to /login, preserving the
// original destination in ?next= so login can return the user there.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetUser(r.Context()) == nil {
			dest := r.URL.Path
			if r.URL.RawQuery != "" {
				dest += "?" + r.URL.RawQuery
			}
			http.Redirect(w, r, "/login?next="+url.QueryEscape(dest), http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}
