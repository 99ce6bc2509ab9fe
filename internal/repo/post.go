package repo

import (
	"context"
	"database/sql"

	"github.com/parvez-irfan/BlogSite/internal/models"
)

// ========================
// REPOSITORY STRUCT
// ========================

type PostRepo struct {
	DB Querier
}

func NewPostRepo(db Querier) *PostRepo {
	return &PostRepo{DB: db}
}

// ========================
// CREATE POST
// ========================

func (r *PostRepo) Create(ctx context.Context, title, subtitle, date, body, imgURL string, userID int) (*models.Post, error) {
	post := &models.Post{}
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO posts (title, subtitle, date, body, img_url, user_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, title, subtitle, date, body, img_url, user_id`,
		title, subtitle, date, body, imgURL, userID,
	).Scan(
		&post.ID,
		&post.Title,
		&post.Subtitle,
		&post.Date,
		&post.Body,
		&post.ImageURL,
		&post.UserID,
	)
	return post, err
}

// ========================
// GET POST BY ID
// ========================

func (r *PostRepo) GetByID(ctx context.Context, id int) (*models.Post, error) {
	post := &models.Post{}
	err := r.DB.QueryRowContext(ctx,
		`SELECT p.id, p.title, p.subtitle, p.date, p.body, p.img_url, p.user_id, u.name
		 FROM posts p
		 JOIN users u ON u.id = p.user_id
		 WHERE p.id = $1`,
		id,
	).Scan(
		&post.ID,
		&post.Title,
		&post.Subtitle,
		&post.Date,
		&post.Body,
		&post.ImageURL,
		&post.UserID,
		&post.AuthorName,
	)
	return post, err
}

// ========================
// UPDATE POST BY ID
// ========================
// Only title, subtitle, body, and image change; id and date are immutable.

func (r *PostRepo) Update(ctx context.Context, id int, title, subtitle, body, imgURL string) (*models.Post, error) {
	post := &models.Post{}
	err := r.DB.QueryRowContext(ctx,
		`UPDATE posts
		 SET title = $1, subtitle = $2, body = $3, img_url = $4
		 WHERE id = $5
		 RETURNING id, title, subtitle, date, body, img_url, user_id`,
		title, subtitle, body, imgURL, id,
	).Scan(
		&post.ID,
		&post.Title,
		&post.Subtitle,
		&post.Date,
		&post.Body,
		&post.ImageURL,
		&post.UserID,
	)
	return post, err
}

// ========================
// DELETE POST BY ID
// ========================
// Comments cascade at the schema level.

func (r *PostRepo) Delete(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// ========================
// LIST ALL POSTS
// ========================
// Newest first, as on the front page.

func (r *PostRepo) List(ctx context.Context) ([]models.Post, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT p.id, p.title, p.subtitle, p.date, p.body, p.img_url, p.user_id, u.name
		 FROM posts p
		 JOIN users u ON u.id = p.user_id
		 ORDER BY p.id DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Subtitle, &p.Date, &p.Body, &p.ImageURL, &p.UserID, &p.AuthorName); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}
