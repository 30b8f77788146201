package service

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/learnhub-auth/internal/logger"
	"github.com/dtroode/learnhub-auth/internal/model"
)

// TokenLedger issues token pairs, records them, and answers whether a
// presented access token is still usable. It composes the TokenSigner and
// the AuthTokenStore.
type TokenLedger struct {
	signer model.TokenSigner
	store  model.AuthTokenStore
	logger *logger.Logger
	now    func() time.Time
}

func NewTokenLedger(signer model.TokenSigner, store model.AuthTokenStore, logger *logger.Logger) *TokenLedger {
	return &TokenLedger{signer: signer, store: store, logger: logger, now: time.Now}
}

// Issue signs a new access/refresh pair for the user and records it.
func (l *TokenLedger) Issue(ctx context.Context, user model.User) (accessToken string, refreshToken string, err error) {
	access, err := l.signer.IssueAccessToken(user)
	if err != nil {
		return "", "", fmt.Errorf("issue access: %w", err)
	}

	refresh, err := l.signer.IssueRefreshToken(user)
	if err != nil {
		return "", "", fmt.Errorf("issue refresh: %w", err)
	}

	if err := l.Record(ctx, user.ID, access, refresh); err != nil {
		return "", "", err
	}

	return access, refresh, nil
}

// Record appends a usable ledger row for the pair.
func (l *TokenLedger) Record(ctx context.Context, userID uuid.UUID, accessToken, refreshToken string) error {
	token := model.AuthToken{
		ID:               uuid.New(),
		UserID:           userID,
		AccessTokenHash:  hashToken(accessToken),
		RefreshTokenHash: hashToken(refreshToken),
		Kind:             model.TokenKindBearer,
		IssuedAt:         l.now(),
	}

	if err := l.store.Create(ctx, token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	return nil
}

// RevokeAll marks every usable token of the user expired and revoked.
func (l *TokenLedger) RevokeAll(ctx context.Context, userID uuid.UUID) (int64, error) {
	revoked, err := l.store.RevokeAllByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("revoke tokens: %w", err)
	}

	l.logger.Info("Token ledger: revoked user tokens",
		"user_id", userID,
		"revoked", revoked)

	return revoked, nil
}

// IsValid reports whether the access token verifies and its ledger row is usable.
func (l *TokenLedger) IsValid(ctx context.Context, accessToken string) bool {
	_, err := l.Authenticate(ctx, accessToken)
	return err == nil
}

// Authenticate verifies the access token and checks it against the ledger.
// It returns ErrInvalidSignature, ErrTokenExpired or ErrTokenRevoked on
// rejection.
func (l *TokenLedger) Authenticate(ctx context.Context, accessToken string) (model.Claims, error) {
	claims, err := l.signer.Verify(accessToken)
	if err != nil {
		return model.Claims{}, err
	}

	if claims.Type != model.TokenTypeAccess || !claims.Role.Valid() {
		return model.Claims{}, model.ErrInvalidSignature
	}

	record, err := l.store.GetByAccessHash(ctx, hashToken(accessToken))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Claims{}, model.ErrTokenRevoked
		}
		return model.Claims{}, fmt.Errorf("get token: %w", err)
	}

	if !record.Usable() || record.UserID != claims.UserID {
		return model.Claims{}, model.ErrTokenRevoked
	}

	return claims, nil
}

func hashToken(token string) []byte {
	h := sha256.Sum256([]byte(token))
	return h[:]
}
