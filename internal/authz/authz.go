// Package authz decides whether the current session's user may perform a
// privileged action. Decisions are returned as values; callers turn a denial
// into a redirect, never into an error page.
package authz

import "github.com/parvez-irfan/BlogSite/internal/models"

// Action names a privileged operation on the blog.
type Action string

const (
	ActionCreatePost Action = "create_post"
	ActionEditPost   Action = "edit_post"
	ActionDeletePost Action = "delete_post"
)

// Decision is the result of an authorization check.
type Decision struct {
	Allowed bool
	// Reason is a short machine-readable cause when denied: "anonymous",
	// "not_author", "not_owner".
	Reason string
}

var allowed = Decision{Allowed: true}

// Authorize checks whether user may perform action. Ownership for edits is
// checked separately with CanEditPost since it needs the post.
func Authorize(user *models.User, action Action) Decision {
	switch action {
	case ActionCreatePost, ActionEditPost, ActionDeletePost:
		return canManagePosts(user)
	default:
		return Decision{Reason: "unknown_action"}
	}
}

// CanEditPost requires author role and ownership of the post. A non-owning
// author is denied silently (the handler redirects to the read view).
func CanEditPost(user *models.User, post *models.Post) Decision {
	if d := canManagePosts(user); !d.Allowed {
		return d
	}
	if post == nil || post.UserID != user.ID {
		return Decision{Reason: "not_owner"}
	}
	return allowed
}

func canManagePosts(user *models.User) Decision {
	if user == nil {
		return Decision{Reason: "anonymous"}
	}
	if !user.IsAuthor() {
		return Decision{Reason: "not_author"}
	}
	return allowed
}
