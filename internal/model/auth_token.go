package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AuthTokenStore records issued token pairs and their revocation state.
type AuthTokenStore interface {
	Create(ctx context.Context, token AuthToken) error
	GetByAccessHash(ctx context.Context, accessHash []byte) (AuthToken, error)
	// RevokeAllByUser marks every usable token of the user expired and revoked
	// in one transaction and returns the number of rows flipped.
	RevokeAllByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

// TokenKind enumerates kinds of issued tokens.
type TokenKind string

// TokenKindBearer is the only kind issued today.
const TokenKindBearer TokenKind = "BEARER"

// AuthToken is a ledger row for one issued access/refresh pair.
// Token values are stored as SHA-256 digests.
type AuthToken struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	AccessTokenHash  []byte
	RefreshTokenHash []byte
	Kind             TokenKind
	Expired          bool
	Revoked          bool
	IssuedAt         time.Time
}

// Usable reports whether the token has not reached a terminal state.
func (t AuthToken) Usable() bool {
	return !t.Expired && !t.Revoked
}
