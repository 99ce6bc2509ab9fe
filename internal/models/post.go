package models

// Post is one published blog entry. Date is the human-readable publication
// date (e.g. "September 01, 2026"); it is stamped once at creation and never
// updated. Body holds sanitized HTML.
type Post struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Date     string `json:"date"`
	Body     string `json:"body"`
	ImageURL string `json:"image_url"`
	UserID   int    `json:"user_id"`

	// AuthorName is populated by list/detail queries that join users.
	AuthorName string `json:"author_name,omitempty"`
}
