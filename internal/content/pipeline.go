// Package content implements the submission pipeline applied whenever a
// user submits a post or comment: validate, sanitize, authorize, persist.
// Any gate can short-circuit the submission with a typed error; persistence
// runs in a single transaction.
package content

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/parvez-irfan/BlogSite/internal/authz"
	"github.com/parvez-irfan/BlogSite/internal/metrics"
	"github.com/parvez-irfan/BlogSite/internal/models"
	"github.com/parvez-irfan/BlogSite/internal/repo"
	"github.com/parvez-irfan/BlogSite/internal/sanitize"
)

// DateLayout is the human-readable publication date stamped on new posts.
const DateLayout = "January 02, 2006"

// PostInput carries the raw form fields of a post submission.
type PostInput struct {
	Title    string
	Subtitle string
	Body     string
	ImageURL string
}

// ==========================
// Pipeline
// ==========================
type Pipeline struct {
	DB        *sql.DB
	Sanitizer *sanitize.Sanitizer

	// Now is swappable in tests; defaults to time.Now.
	Now func() time.Time
}

func NewPipeline(db *sql.DB, s *sanitize.Sanitizer) *Pipeline {
	return &Pipeline{DB: db, Sanitizer: s, Now: time.Now}
}

// ==========================
// Create Post
// ==========================
// Stamps the publication date at persist time; the date never changes
// afterward. The insert and its audit entry commit together.
func (p *Pipeline) CreatePost(ctx context.Context, actor *models.User, in PostInput) (*models.Post, error) {
	if fields := validatePost(in); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	body := p.Sanitizer.Clean(in.Body)

	if d := authz.Authorize(actor, authz.ActionCreatePost); !d.Allowed {
		return nil, ErrDenied
	}

	date := p.Now().Format(DateLayout)

	tx, err := p.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	post, err := repo.NewPostRepo(tx).Create(ctx, strings.TrimSpace(in.Title), strings.TrimSpace(in.Subtitle), date, body, strings.TrimSpace(in.ImageURL), actor.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, &ConflictError{Field: "title", Message: "a post with that title already exists"}
		}
		return nil, err
	}

	if err := repo.NewAuditRepo(tx).Log(ctx, actor.ID, "create", "post", post.ID, post.Title); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	metrics.IncPostsCreated()
	return post, nil
}

// ==========================
// Edit Post
// ==========================
// Only the owning author may edit; a non-owning author gets ErrDenied and is
// redirected to the read view. Title, subtitle, body, and image change; id
// and date are left alone.
func (p *Pipeline) EditPost(ctx context.Context, actor *models.User, postID int, in PostInput) (*models.Post, error) {
	if fields := validatePost(in); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	body := p.Sanitizer.Clean(in.Body)

	existing, err := repo.NewPostRepo(p.DB).GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if d := authz.CanEditPost(actor, existing); !d.Allowed {
		return nil, ErrDenied
	}

	tx, err := p.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	post, err := repo.NewPostRepo(tx).Update(ctx, postID, strings.TrimSpace(in.Title), strings.TrimSpace(in.Subtitle), body, strings.TrimSpace(in.ImageURL))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, &ConflictError{Field: "title", Message: "a post with that title already exists"}
		}
		return nil, err
	}

	if err := repo.NewAuditRepo(tx).Log(ctx, actor.ID, "update", "post", post.ID, post.Title); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return post, nil
}

// ==========================
// Delete Post
// ==========================
// One-step operation: authorization then transactional removal. Comments
// cascade at the schema level, so no dangling rows survive.
func (p *Pipeline) DeletePost(ctx context.Context, actor *models.User, postID int) error {
	if d := authz.Authorize(actor, authz.ActionDeletePost); !d.Allowed {
		return ErrDenied
	}

	tx, err := p.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := repo.NewPostRepo(tx).Delete(ctx, postID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	if err := repo.NewAuditRepo(tx).Log(ctx, actor.ID, "delete", "post", postID, ""); err != nil {
		return err
	}

	return tx.Commit()
}

// ==========================
// Add Comment
// ==========================
// Any authenticated user may comment. The body is sanitized before the
// emptiness check so that markup-only submissions are rejected too.
func (p *Pipeline) AddComment(ctx context.Context, actor *models.User, postID int, body string) (*models.Comment, error) {
	if actor == nil {
		return nil, ErrDenied
	}

	clean := p.Sanitizer.Clean(body)
	if clean == "" {
		return nil, &ValidationError{Fields: map[string]string{"body": "required"}}
	}

	comment, err := repo.NewCommentRepo(p.DB).Create(ctx, clean, actor.ID, postID)
	if err != nil {
		if isFKViolation(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	metrics.IncCommentsCreated()
	return comment, nil
}

func validatePost(in PostInput) map[string]string {
	fields := make(map[string]string)
	if strings.TrimSpace(in.Title) == "" {
		fields["title"] = "required"
	}
	if strings.TrimSpace(in.Subtitle) == "" {
		fields["subtitle"] = "required"
	}
	if strings.TrimSpace(in.Body) == "" {
		fields["body"] = "required"
	}
	return fields
}
