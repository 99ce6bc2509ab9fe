package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/parvez-irfan/BlogSite/internal/authz"
	"github.com/parvez-irfan/BlogSite/internal/content"
	"github.com/parvez-irfan/BlogSite/internal/middleware"
)

// ==========================
// Index
// ==========================
// Front page: every post, newest first.
func (h *Web) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Posts.List(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render(w, http.StatusOK, "index.html", map[string]any{
		"User":  middleware.GetUser(r.Context()),
		"Posts": posts,
	})
}

// ==========================
// Show Post
// ==========================
func (h *Web) ShowPost(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.notFound(w, r)
		return
	}

	post, err := h.Posts.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.notFound(w, r)
			return
		}
		h.serverError(w, r, err)
		return
	}

	comments, err := h.Comments.ListByPost(r.Context(), id)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	user := middleware.GetUser(r.Context())
	h.render(w, http.StatusOK, "post.html", map[string]any{
		"User":     user,
		"Post":     post,
		"Comments": comments,
		"CanEdit":  authz.CanEditPost(user, post).Allowed,
	})
}

// ==========================
// Submit Comment
// ==========================
// Mounted behind RequireUser; the pipeline still re-checks the actor.
func (h *Web) SubmitComment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.notFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	user := middleware.GetUser(r.Context())
	_, err = h.Pipeline.AddComment(r.Context(), user, id, r.FormValue("body"))
	if err != nil {
		var vErr *content.ValidationError
		switch {
		case errors.As(err, &vErr):
			h.renderPostWithCommentError(w, r, id, vErr.Fields["body"])
		case errors.Is(err, content.ErrNotFound):
			h.notFound(w, r)
		case errors.Is(err, content.ErrDenied):
			http.Redirect(w, r, "/login", http.StatusFound)
		default:
			h.serverError(w, r, err)
		}
		return
	}

	// Post/redirect/get so a refresh cannot double-submit.
	http.Redirect(w, r, "/post/"+strconv.Itoa(id), http.StatusFound)
}

func (h *Web) renderPostWithCommentError(w http.ResponseWriter, r *http.Request, id int, msg string) {
	post, err := h.Posts.GetByID(r.Context(), id)
	if err != nil {
		h.notFound(w, r)
		return
	}
	comments, err := h.Comments.ListByPost(r.Context(), id)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	user := middleware.GetUser(r.Context())
	h.render(w, http.StatusOK, "post.html", map[string]any{
		"User":         user,
		"Post":         post,
		"Comments":     comments,
		"CanEdit":      authz.CanEditPost(user, post).Allowed,
		"CommentError": msg,
	})
}

// ==========================
// New Post
// ==========================
func (h *Web) NewPostForm(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	if d := authz.Authorize(user, authz.ActionCreatePost); !d.Allowed {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	h.render(w, http.StatusOK, "make_post.html", map[string]any{
		"User":     user,
		"Heading":  "New Post",
		"PostID":   0,
		"Fields":   map[string]string{},
		"Title":    "",
		"Subtitle": "",
		"Body":     "",
		"ImageURL": "",
	})
}

func (h *Web) CreatePost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	user := middleware.GetUser(r.Context())
	in := content.PostInput{
		Title:    r.FormValue("title"),
		Subtitle: r.FormValue("subtitle"),
		Body:     r.FormValue("body"),
		ImageURL: r.FormValue("image_url"),
	}

	post, err := h.Pipeline.CreatePost(r.Context(), user, in)
	if err != nil {
		h.handlePostSubmitError(w, r, err, in, map[string]any{
			"User":    user,
			"Heading": "New Post",
			"PostID":  0,
		}, "/")
		return
	}

	http.Redirect(w, r, "/post/"+strconv.Itoa(post.ID), http.StatusFound)
}

// ==========================
// Edit Post
// ==========================
func (h *Web) EditPostForm(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.notFound(w, r)
		return
	}

	post, err := h.Posts.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.notFound(w, r)
			return
		}
		h.serverError(w, r, err)
		return
	}

	user := middleware.GetUser(r.Context())
	if d := authz.CanEditPost(user, post); !d.Allowed {
		// Silent denial: back to the read view, not an error page.
		http.Redirect(w, r, "/post/"+strconv.Itoa(id), http.StatusFound)
		return
	}

	h.render(w, http.StatusOK, "make_post.html", map[string]any{
		"User":     user,
		"Heading":  "Edit Post",
		"Fields":   map[string]string{},
		"PostID":   post.ID,
		"Title":    post.Title,
		"Subtitle": post.Subtitle,
		"Body":     post.Body,
		"ImageURL": post.ImageURL,
	})
}

func (h *Web) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.notFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	user := middleware.GetUser(r.Context())
	in := content.PostInput{
		Title:    r.FormValue("title"),
		Subtitle: r.FormValue("subtitle"),
		Body:     r.FormValue("body"),
		ImageURL: r.FormValue("image_url"),
	}

	_, err = h.Pipeline.EditPost(r.Context(), user, id, in)
	if err != nil {
		h.handlePostSubmitError(w, r, err, in, map[string]any{
			"User":    user,
			"Heading": "Edit Post",
			"PostID":  id,
		}, "/post/"+strconv.Itoa(id))
		return
	}

	http.Redirect(w, r, "/post/"+strconv.Itoa(id), http.StatusFound)
}

// ==========================
// Delete Post
// ==========================
func (h *Web) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.notFound(w, r)
		return
	}

	user := middleware.GetUser(r.Context())
	if err := h.Pipeline.DeletePost(r.Context(), user, id); err != nil {
		switch {
		case errors.Is(err, content.ErrDenied):
			http.Redirect(w, r, "/", http.StatusFound)
		case errors.Is(err, content.ErrNotFound):
			h.notFound(w, r)
		default:
			h.serverError(w, r, err)
		}
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

// handlePostSubmitError maps a pipeline error to the right response for the
// post form: field errors re-render the form with the submitted values,
// denial redirects silently to fallback.
func (h *Web) handlePostSubmitError(w http.ResponseWriter, r *http.Request, err error, in content.PostInput, data map[string]any, fallback string) {
	var vErr *content.ValidationError
	var cErr *content.ConflictError
	switch {
	case errors.As(err, &vErr):
		data["Fields"] = vErr.Fields
	case errors.As(err, &cErr):
		data["Fields"] = map[string]string{cErr.Field: cErr.Message}
	case errors.Is(err, content.ErrDenied):
		http.Redirect(w, r, fallback, http.StatusFound)
		return
	case errors.Is(err, content.ErrNotFound):
		h.notFound(w, r)
		return
	default:
		h.serverError(w, r, err)
		return
	}

	data["Title"] = in.Title
	data["Subtitle"] = in.Subtitle
	data["Body"] = in.Body
	data["ImageURL"] = in.ImageURL
	h.render(w, http.StatusOK, "make_post.html", data)
}
