package content

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/parvez-irfan/BlogSite/internal/auth"
	"github.com/parvez-irfan/BlogSite/internal/models"
	"github.com/parvez-irfan/BlogSite/internal/repo"
)

// MinimumAge is the lowest age accepted at registration.
const MinimumAge = 18

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// titleCase capitalizes a display name for storage. cases.Caser carries
// internal transform state and is not safe for concurrent use, so a fresh
// one is built per call rather than shared across requests.
func titleCase(name string) string {
	return cases.Title(language.English).String(name)
}

// ==========================
// Accounts
// ==========================
// Accounts is the credential store: it validates registration input, derives
// salted password hashes, and authenticates logins. Session issuance is the
// caller's job.
type Accounts struct {
	Users *repo.UserRepo
}

func NewAccounts(db repo.Querier) *Accounts {
	return &Accounts{Users: repo.NewUserRepo(db)}
}

// ==========================
// Register
// ==========================
// New accounts always start as readers; authors are promoted out of band.
// The display name is capitalized before storage. Email is not required to
// be unique.
func (a *Accounts) Register(ctx context.Context, name, email, password string, age int) (*models.User, error) {
	fields := make(map[string]string)
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		fields["name"] = "required"
	}
	if email == "" {
		fields["email"] = "required"
	} else if !emailRegex.MatchString(email) {
		fields["email"] = "invalid email address"
	}
	if password == "" {
		fields["password"] = "required"
	}
	if age < MinimumAge {
		fields["age"] = "must be 18 or older"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user, err := a.Users.Create(ctx, titleCase(name), email, hash, age, models.RoleReader)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, &ConflictError{Field: "name", Message: "that name is already taken"}
		}
		return nil, err
	}
	return user, nil
}

// ==========================
// Authenticate
// ==========================
// Looks up the first stored account matching the email (insertion order;
// email is not unique in the schema) and verifies the password against the
// stored hash.
func (a *Accounts) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := a.Users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		return nil, ErrBadCredential
	}
	return user, nil
}
