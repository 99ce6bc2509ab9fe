package models

// RoleReader is the default role; readers can comment but not publish.
const RoleReader = "reader"

// RoleAuthor may create, edit, and delete blog posts.
const RoleAuthor = "author"

type User struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Age          int    `json:"age"`
	Role         string `json:"role"`
}

// IsAuthor reports whether the user may manage posts.
func (u *User) IsAuthor() bool {
	return u != nil && u.Role == RoleAuthor
}
