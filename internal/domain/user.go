package domain

import (
	"context"
	"strings"
	"time"
)

// Key for storing caller identity in context
type contextKey string

const (
	CallerEmailKey contextKey = "caller_email"
	CallerRoleKey  contextKey = "caller_role"
)

type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleViewer UserRole = "viewer"
)

// User is an account owner (STO), identified by email. The role is assigned
// once at creation from the admin allow-list; upserts refresh the display
// name from the email local-part but leave the role untouched. A change to
// the allow-list does not reclassify existing users. Kept as-is pending
// product confirmation.
type User struct {
	ID        string    `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Name      string    `json:"name" db:"name"`
	Role      UserRole  `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// NameFromEmail derives a display name from the local-part of an email.
func NameFromEmail(email string) string {
	if idx := strings.Index(email, "@"); idx >= 0 {
		return email[:idx]
	}
	return email
}

type UserRepository interface {
	// Upsert inserts or updates the user identified by email. On conflict
	// only the name is refreshed; the stored role wins and is reported back
	// on the passed struct along with the surrogate ID.
	Upsert(ctx context.Context, user *User) error

	// GetByEmail retrieves a user by their email address
	GetByEmail(ctx context.Context, email string) (*User, error)
}

// ErrUserNotFound is returned when a user is not found
type ErrUserNotFound struct {
	Message string
}

func (e *ErrUserNotFound) Error() string {
	return e.Message
}
