package handlers

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/parvez-irfan/BlogSite/internal/content"
	"github.com/parvez-irfan/BlogSite/internal/middleware"
	"github.com/parvez-irfan/BlogSite/internal/repo"
	"github.com/parvez-irfan/BlogSite/internal/session"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	// safe marks sanitized post/comment bodies as trusted HTML. Only content
	// that went through the sanitizer is stored, so this does not reopen the
	// injection hole the sanitizer closed.
	"safe": func(s string) template.HTML { return template.HTML(s) },
}).ParseFS(templatesFS, "templates/*.html"))

// ==========================
// Web
// ==========================
// Web holds every dependency the server-rendered handlers need. It is built
// once at startup and shared across requests; all per-request state lives in
// the request context.
type Web struct {
	Users    *repo.UserRepo
	Posts    *repo.PostRepo
	Comments *repo.CommentRepo
	Accounts *content.Accounts
	Pipeline *content.Pipeline
	Sessions *session.Manager
}

func (h *Web) render(w http.ResponseWriter, status int, name string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		slog.Error("render template", "template", name, "error", err)
	}
}

func (h *Web) notFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusNotFound, "notfound.html", map[string]any{
		"User": middleware.GetUser(r.Context()),
	})
}

func (h *Web) serverError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("handler error", "method", r.Method, "path", r.URL.Path, "error", err)
	h.render(w, http.StatusInternalServerError, "error.html", map[string]any{
		"User": middleware.GetUser(r.Context()),
	})
}

// NotFound is the router's fallback handler.
func (h *Web) NotFound(w http.ResponseWriter, r *http.Request) {
	h.notFound(w, r)
}

// About renders the static about page.
func (h *Web) About(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "about.html", map[string]any{
		"User": middleware.GetUser(r.Context()),
	})
}

// Contact renders the static contact page.
func (h *Web) Contact(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "contact.html", map[string]any{
		"User": middleware.GetUser(r.Context()),
	})
}
