package model

import (
	"time"

	"github.com/google/uuid"
)

// TokenType distinguishes access and refresh tokens.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Claims are the identity claims carried by a signed token.
type Claims struct {
	ID        string
	Subject   string
	UserID    uuid.UUID
	Role      Role
	Type      TokenType
	KeyID     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenSigner creates and verifies signed, time-bounded tokens.
type TokenSigner interface {
	IssueAccessToken(user User) (string, error)
	IssueRefreshToken(user User) (string, error)
	// Verify returns ErrTokenExpired or ErrInvalidSignature on failure.
	Verify(token string) (Claims, error)
}
