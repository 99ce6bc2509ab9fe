package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/parvez-irfan/BlogSite/internal/content"
	"github.com/parvez-irfan/BlogSite/internal/metrics"
	"github.com/parvez-irfan/BlogSite/internal/middleware"
)

// ==========================
// Register
// ==========================
func (h *Web) RegisterForm(w http.ResponseWriter, r *http.Request) {
	if middleware.GetUser(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	h.render(w, http.StatusOK, "register.html", map[string]any{
		"Fields": map[string]string{},
		"Name":   "",
		"Email":  "",
		"Age":    "",
	})
}

// RegisterSubmit creates the account and logs the new user straight in.
func (h *Web) RegisterSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	name := r.FormValue("name")
	email := r.FormValue("email")
	password := r.FormValue("password")
	ageStr := strings.TrimSpace(r.FormValue("age"))

	age, ageErr := strconv.Atoi(ageStr)

	rerender := func(fields map[string]string) {
		h.render(w, http.StatusOK, "register.html", map[string]any{
			"Fields": fields,
			"Name":   name,
			"Email":  email,
			"Age":    ageStr,
		})
	}

	if ageErr != nil {
		rerender(map[string]string{"age": "must be a number"})
		return
	}

	user, err := h.Accounts.Register(r.Context(), name, email, password, age)
	if err != nil {
		var vErr *content.ValidationError
		var cErr *content.ConflictError
		switch {
		case errors.As(err, &vErr):
			rerender(vErr.Fields)
		case errors.As(err, &cErr):
			rerender(map[string]string{cErr.Field: cErr.Message})
		default:
			h.serverError(w, r, err)
		}
		return
	}

	if err := h.Sessions.Issue(w, user); err != nil {
		h.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// ==========================
// Login
// ==========================
func (h *Web) LoginForm(w http.ResponseWriter, r *http.Request) {
	if middleware.GetUser(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	h.render(w, http.StatusOK, "login.html", map[string]any{
		"Next":  r.URL.Query().Get("next"),
		"Email": "",
		"Error": "",
	})
}

// LoginSubmit authenticates and, on success, sends the user back to where
// they were headed (?next=) or to the front page.
func (h *Web) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")
	next := r.FormValue("next")

	rerender := func(msg string) {
		h.render(w, http.StatusOK, "login.html", map[string]any{
			"Error": msg,
			"Email": email,
			"Next":  next,
		})
	}

	if strings.TrimSpace(email) == "" || password == "" {
		rerender("Email and password are required")
		return
	}

	user, err := h.Accounts.Authenticate(r.Context(), email, password)
	if err != nil {
		switch {
		case errors.Is(err, content.ErrNotFound):
			metrics.IncLogins("not_found")
			rerender("There is no account with this email.")
		case errors.Is(err, content.ErrBadCredential):
			metrics.IncLogins("bad_password")
			rerender("Password does not match")
		default:
			h.serverError(w, r, err)
		}
		return
	}

	if err := h.Sessions.Issue(w, user); err != nil {
		h.serverError(w, r, err)
		return
	}

	metrics.IncLogins("success")
	http.Redirect(w, r, safeNext(next), http.StatusFound)
}

// ==========================
// Logout
// ==========================
func (h *Web) Logout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Clear(w)
	http.Redirect(w, r, "/login", http.StatusFound)
}

// safeNext keeps the post-login redirect on-site. Anything that is not a
// local absolute path falls back to the front page.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/"
	}
	return next
}
