package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for user accounts.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	// Create inserts the user atomically and returns ErrConflict when the
	// login identifier is already taken by a non-deleted account.
	Create(ctx context.Context, user User) (User, error)
}

// UserLookup resolves a user by its stable identifier. It is the only
// capability other platform subsystems consume.
type UserLookup interface {
	GetUser(ctx context.Context, id uuid.UUID) (User, error)
}

// User represents a stored account.
type User struct {
	ID    uuid.UUID
	Email string
	// PasswordHash is nil for federated-only accounts.
	PasswordHash []byte
	FirstName    string
	LastName     string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// HasPassword reports whether the account can authenticate with a local password.
func (u User) HasPassword() bool {
	return len(u.PasswordHash) > 0
}

// RegisterParams contains parameters to register a local account.
type RegisterParams struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}
