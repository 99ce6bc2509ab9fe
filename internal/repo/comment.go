package repo

import (
	"context"

	"github.com/parvez-irfan/BlogSite/internal/models"
)

// ========================
// REPOSITORY STRUCT
// ========================

type CommentRepo struct {
	DB Querier
}

func NewCommentRepo(db Querier) *CommentRepo {
	return &CommentRepo{DB: db}
}

// ========================
// CREATE COMMENT
// ========================
// The foreign keys guarantee the user and post exist at insert time.

func (r *CommentRepo) Create(ctx context.Context, body string, userID, postID int) (*models.Comment, error) {
	comment := &models.Comment{}
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO comments (body, user_id, post_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, body, user_id, post_id`,
		body, userID, postID,
	).Scan(
		&comment.ID,
		&comment.Body,
		&comment.UserID,
		&comment.PostID,
	)
	return comment, err
}

// ========================
// LIST COMMENTS FOR POST
// ========================
// Newest first, matching the post page.

func (r *CommentRepo) ListByPost(ctx context.Context, postID int) ([]models.Comment, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT c.id, c.body, c.user_id, c.post_id, u.name
		 FROM comments c
		 JOIN users u ON u.id = c.user_id
		 WHERE c.post_id = $1
		 ORDER BY c.id DESC`,
		postID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.Body, &c.UserID, &c.PostID, &c.AuthorName); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
