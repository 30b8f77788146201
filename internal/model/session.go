package model

import "github.com/google/uuid"

// Session is the result of a successful authentication.
type Session struct {
	AccessToken  string
	RefreshToken string
	User         User
}

// Principal is the authenticated caller attached to a request context.
type Principal struct {
	UserID uuid.UUID
	Email  string
	Role   Role
}

// AuthState tracks a single authentication attempt.
type AuthState string

const (
	StateUnauthenticated AuthState = "UNAUTHENTICATED"
	StateVerifying       AuthState = "VERIFYING"
	StateAuthenticated   AuthState = "AUTHENTICATED"
	StateRejected        AuthState = "REJECTED"
)
