package repo

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/parvez-irfan/BlogSite/internal/models"
)

func userColumns() []string {
	return []string{"id", "name", "email", "password_hash", "age", "role"}
}

func TestUserRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO users \(name, email, password_hash, age, role\)`).
		WithArgs("Alice", "alice@example.com", "pbkdf2:sha256:600000$salt$aa", 30, models.RoleReader).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(1, "Alice", "alice@example.com", "pbkdf2:sha256:600000$salt$aa", 30, models.RoleReader))

	repo := NewUserRepo(db)
	user, err := repo.Create(context.Background(), "Alice", "alice@example.com", "pbkdf2:sha256:600000$salt$aa", 30, models.RoleReader)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if user.ID != 1 || user.Name != "Alice" || user.Role != models.RoleReader {
		t.Errorf("unexpected user: %+v", user)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepo_GetByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name, email, password_hash, age, role`).
		WithArgs("bob@example.com").
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(2, "Bob", "bob@example.com", "hash", 25, models.RoleReader))

	repo := NewUserRepo(db)
	user, err := repo.GetByEmail(context.Background(), "bob@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if user.ID != 2 || user.Name != "Bob" {
		t.Errorf("unexpected user: %+v", user)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepo_GetByEmail_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name, email, password_hash, age, role`).
		WithArgs("nobody@example.com").
		WillReturnError(sql.ErrNoRows)

	repo := NewUserRepo(db)
	_, err = repo.GetByEmail(context.Background(), "nobody@example.com")
	if err != sql.ErrNoRows {
		t.Errorf("expected sql.ErrNoRows, got: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestUserRepo_SetRole(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`UPDATE users`).
		WithArgs(models.RoleAuthor, 3).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(3, "Cara", "cara@example.com", "hash", 40, models.RoleAuthor))

	repo := NewUserRepo(db)
	user, err := repo.SetRole(context.Background(), 3, models.RoleAuthor)
	if err != nil {
		t.Fatalf("SetRole: %v", err)
	}
	if user.Role != models.RoleAuthor {
		t.Errorf("unexpected role: %q", user.Role)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
