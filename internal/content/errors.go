package content

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// Sentinel errors shared by the account and submission paths. Handlers map
// these onto redirects and pages; none of them is fatal to the process.
var (
	// ErrDenied means the actor lacks the privilege or the ownership for the
	// attempted action. Handlers recover by redirecting to a safe view, never
	// by rendering an error page.
	ErrDenied = errors.New("content: action denied")

	// ErrNotFound means a referenced post or account does not exist.
	ErrNotFound = errors.New("content: not found")

	// ErrBadCredential means the supplied password does not match the stored
	// hash. Shown as a login-page message.
	ErrBadCredential = errors.New("content: bad credential")
)

// ValidationError reports missing or malformed form fields, keyed by field
// name. Handlers re-render the form with the field messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("content: validation failed on %d field(s)", len(e.Fields))
}

// ConflictError reports a unique-constraint violation on a single field,
// shown as a field error on the re-rendered form.
type ConflictError struct {
	Field   string
	Message string
}

func (e *ConflictError) Error() string {
	return "content: conflict on " + e.Field
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (code 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// isFKViolation reports whether err is a Postgres foreign-key violation
// (code 23503), i.e. the referenced row vanished before the insert landed.
func isFKViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}
