package content

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"github.com/parvez-irfan/BlogSite/internal/models"
	"github.com/parvez-irfan/BlogSite/internal/sanitize"
)

func newTestPipeline(t *testing.T) (*Pipeline, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	p := NewPipeline(db, sanitize.New())
	p.Now = func() time.Time { return time.Date(2025, time.May, 1, 12, 0, 0, 0, time.UTC) }
	return p, mock, db
}

func author() *models.User {
	return &models.User{ID: 2, Name: "Alice", Role: models.RoleAuthor}
}

func reader() *models.User {
	return &models.User{ID: 3, Name: "Bob", Role: models.RoleReader}
}

func postColumns() []string {
	return []string{"id", "title", "subtitle", "date", "body", "img_url", "user_id"}
}

// ==========================
// Create Post
// ==========================

func TestCreatePost_SanitizesAndStampsDate(t *testing.T) {
	p, mock, db := newTestPipeline(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO posts`).
		WithArgs("Title", "Sub", "May 01, 2025", "Hello", "", 2).
		WillReturnRows(sqlmock.NewRows(postColumns()).
			AddRow(1, "Title", "Sub", "May 01, 2025", "Hello", "", 2))
	mock.ExpectExec(`INSERT INTO audit_log`).
		WithArgs(2, "create", "post", 1, "Title").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	post, err := p.CreatePost(context.Background(), author(), PostInput{
		Title:    "Title",
		Subtitle: "Sub",
		Body:     "<script>alert(1)</script>Hello",
	})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if post.Date != "May 01, 2025" {
		t.Errorf("date not stamped: %q", post.Date)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestCreatePost_ReaderDenied(t *testing.T) {
	p, mock, db := newTestPipeline(t)
	defer db.Close()

	_, err := p.CreatePost(context.Background(), reader(), PostInput{
		Title:    "Title",
		Subtitle: "Sub",
		Body:     "Body",
	})
	if !errors.Is(err, ErrDenied) {
		t.Errorf("expected ErrDenied, got: %v", err)
	}
	// nothing reaches the database
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestCreatePost_MissingFields(t *testing.T) {
	p, mock, db := newTestPipeline(t)
	defer db.Close()

	_, err := p.CreatePost(context.Background(), author(), PostInput{Title: "  "})

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got: %v", err)
	}
	for _, field := range []string{"title", "subtitle", "body"} {
		if _, ok := vErr.Fields[field]; !ok {
			t.Errorf("missing field error for %q: %v", field, vErr.Fields)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestCreatePost_DuplicateTitle(t *testing.T) {
	p, mock, db := newTestPipeline(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO posts`).
		WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectRollback()

	_, err := p.CreatePost(context.Background(), author(), PostInput{
		Title:    "Taken",
		Subtitle: "Sub",
		Body:     "Body",
	})

	var cErr *ConflictError
	if !errors.As(err, &cErr) {
		t.Fatalf("expected ConflictError, got: %v", err)
	}
	if cErr.Field != "title" {
		t.Errorf("expected conflict on title, got %q", cErr.Field)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

// ==========================
// Edit Post
// ==========================

func TestEditPost_Owner(t *testing.T) {
	p, mock, db := newTestPipeline(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT p.id, p.title`).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "subtitle", "date", "body", "img_url", "user_id", "name"}).
			AddRow(5, "Old", "OldSub", "May 01, 2024", "old", "", 2, "Alice"))
	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE posts`).
		WithArgs("New", "NewSub", "newer", "", 5).
		WillReturnRows(sqlmock.NewRows(postColumns()).
			AddRow(5, "New", "NewSub", "May 01, 2024", "newer", "", 2))
	mock.ExpectExec(`INSERT INTO audit_log`).
		WithArgs(2, "update", "post", 5, "New").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	post, err := p.EditPost(context.Background(), author(), 5, PostInput{
		Title:    "New",
		Subtitle: "NewSub",
		Body:     "newer",
	})
	if err != nil {
		t.Fatalf("EditPost: %v", err)
	}
	if post.Date != "May 01, 2024" {
		t.Errorf("date changed on edit: %q", post.Date)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestEditPost_NonOwnerDenied(t *testing.T) {
	p, mock, db := newTestPipeline(t)
	defer db.Close()

	other := &models.User{ID: 9, Name: "Carol", Role: models.RoleAuthor}

	mock.ExpectQuery(`SELECT p.id, p.title`).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "subtitle", "date", "body", "img_url", "user_id", "name"}).
			AddRow(5, "Old", "OldSub", "May 01, 2024", "old", "", 2, "Alice"))

	_, err := p.EditPost(context.Background(), other, 5, PostInput{
		Title:    "New",
		Subtitle: "NewSub",
		Body:     "newer",
	})
	if !errors.Is(err, ErrDenied) {
		t.Errorf("expected ErrDenied, got: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestEditPost_NotFound(t *testing.T) {
	p, mock, db := newTestPipeline(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT p.id, p.title`).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "subtitle", "date", "body", "img_url", "user_id", "name"}))

	_, err := p.EditPost(context.Background(), author(), 99, PostInput{
		Title:    "New",
		Subtitle: "NewSub",
		Body:     "newer",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

// ==========================
// Delete Post
// ==========================

func TestDeletePost(t *testing.T) {
	p, mock, db := newTestPipeline(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM posts`).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO audit_log`).
		WithArgs(2, "delete", "post", 5, "").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	if err := p.DeletePost(context.Background(), author(), 5); err != nil {
		t.Fatalf("DeletePost: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestDeletePost_ReaderDenied(t *testing.T) {
	p, mock, db := newTestPipeline(t)
	defer db.Close()

	if err := p.DeletePost(context.Background(), reader(), 5); !errors.Is(err, ErrDenied) {
		t.Errorf("expected ErrDenied, got: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestDeletePost_NotFound(t *testing.T) {
	p, mock, db := newTestPipeline(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM posts`).
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	if err := p.DeletePost(context.Background(), author(), 99); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

// ==========================
// Add Comment
// ==========================

func TestAddComment(t *testing.T) {
	p, mock, db := newTestPipeline(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO comments`).
		WithArgs("Nice one", 3, 5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "body", "user_id", "post_id"}).
			AddRow(1, "Nice one", 3, 5))

	comment, err := p.AddComment(context.Background(), reader(), 5, "<script>x()</script>Nice one")
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	if comment.Body != "Nice one" {
		t.Errorf("body not sanitized: %q", comment.Body)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAddComment_Anonymous(t *testing.T) {
	p, mock, db := newTestPipeline(t)
	defer db.Close()

	if _, err := p.AddComment(context.Background(), nil, 5, "hello"); !errors.Is(err, ErrDenied) {
		t.Errorf("expected ErrDenied, got: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAddComment_MarkupOnly(t *testing.T) {
	p, mock, db := newTestPipeline(t)
	defer db.Close()

	_, err := p.AddComment(context.Background(), reader(), 5, "<script>x()</script>")

	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got: %v", err)
	}
	if _, ok := vErr.Fields["body"]; !ok {
		t.Errorf("missing field error for body: %v", vErr.Fields)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAddComment_PostGone(t *testing.T) {
	p, mock, db := newTestPipeline(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO comments`).
		WillReturnError(&pq.Error{Code: "23503"})

	if _, err := p.AddComment(context.Background(), reader(), 99, "hello"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
