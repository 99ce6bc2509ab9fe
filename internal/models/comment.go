package models

// Comment is attached to exactly one post. Body holds sanitized HTML.
// Comments are never edited or deleted on their own; they go away with
// their post.
type Comment struct {
	ID     int    `json:"id"`
	Body   string `json:"body"`
	UserID int    `json:"user_id"`
	PostID int    `json:"post_id"`

	AuthorName string `json:"author_name,omitempty"`
}
