package repo

import (
	"context"

	"github.com/parvez-irfan/BlogSite/internal/models"
)

// ==========================
// UserRepo
// ==========================
type UserRepo struct {
	DB Querier
}

// ==========================
// Constructor
// ==========================
func NewUserRepo(db Querier) *UserRepo {
	return &UserRepo{DB: db}
}

// ==========================
// Create User
// ==========================
func (r *UserRepo) Create(ctx context.Context, name, email, passwordHash string, age int, role string) (*models.User, error) {
	query := `
		INSERT INTO users (name, email, password_hash, age, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, email, password_hash, age, role
	`

	user := &models.User{}

	err := r.DB.QueryRowContext(ctx, query, name, email, passwordHash, age, role).
		Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Age, &user.Role)

	if err != nil {
		return nil, err
	}

	return user, nil
}

// ==========================
// Get By ID
// ==========================
func (r *UserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	query := `
		SELECT id, name, email, password_hash, age, role
		FROM users
		WHERE id = $1
	`

	user := &models.User{}

	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Age, &user.Role)

	if err != nil {
		return nil, err
	}

	return user, nil
}

// ==========================
// Get By Email
// ==========================
// Email is not unique in the schema; the earliest-registered match wins.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, name, email, password_hash, age, role
		FROM users
		WHERE email = $1
		ORDER BY id
		LIMIT 1
	`

	user := &models.User{}

	err := r.DB.QueryRowContext(ctx, query, email).
		Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Age, &user.Role)

	if err != nil {
		return nil, err
	}

	return user, nil
}

// ==========================
// Set Role
// ==========================
func (r *UserRepo) SetRole(ctx context.Context, id int, role string) (*models.User, error) {
	query := `
		UPDATE users
		SET role = $1
		WHERE id = $2
		RETURNING id, name, email, password_hash, age, role
	`

	user := &models.User{}

	err := r.DB.QueryRowContext(ctx, query, role, id).
		Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Age, &user.Role)

	if err != nil {
		return nil, err
	}

	return user, nil
}

// ==========================
// List Users
// ==========================
func (r *UserRepo) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name, email, age, role FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Age, &u.Role); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}
