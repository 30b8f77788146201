package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/learnhub-auth/internal/model"
)

var _ model.AuthTokenStore = (*AuthTokenRepository)(nil)

type AuthTokenRepository struct {
	db DB
}

func NewAuthTokenRepository(db DB) *AuthTokenRepository {
	return &AuthTokenRepository{db: db}
}

func (r *AuthTokenRepository) Create(ctx context.Context, token model.AuthToken) error {
	const query = `
        INSERT INTO auth_tokens (
            id, user_id, access_token_hash, refresh_token_hash, kind, expired, revoked, issued_at
        ) VALUES ($1,$2,$3,$4,$5,FALSE,FALSE,$6)
    `

	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	if token.Kind == "" {
		token.Kind = model.TokenKindBearer
	}

	_, err := r.db.Exec(ctx, query,
		token.ID, token.UserID, token.AccessTokenHash, token.RefreshTokenHash, token.Kind, token.IssuedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create auth token: %w", err)
	}
	return nil
}

func (r *AuthTokenRepository) GetByAccessHash(ctx context.Context, accessHash []byte) (model.AuthToken, error) {
	const query = `
        SELECT id, user_id, access_token_hash, refresh_token_hash, kind, expired, revoked, issued_at
        FROM auth_tokens WHERE access_token_hash = $1
    `
	var t model.AuthToken
	err := r.db.QueryRow(ctx, query, accessHash).Scan(
		&t.ID, &t.UserID, &t.AccessTokenHash, &t.RefreshTokenHash, &t.Kind, &t.Expired, &t.Revoked, &t.IssuedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.AuthToken{}, model.ErrNotFound
		}
		return model.AuthToken{}, fmt.Errorf("failed to get auth token by access hash: %w", err)
	}
	return t, nil
}

// RevokeAllByUser flips every usable token of the user in one transaction, so
// a concurrent reader sees either all of them usable or none.
func (r *AuthTokenRepository) RevokeAllByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	const query = `
        UPDATE auth_tokens SET expired = TRUE, revoked = TRUE
        WHERE user_id = $1 AND (expired = FALSE OR revoked = FALSE)
    `
	var revoked int64
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, query, userID)
		if err != nil {
			return err
		}
		revoked = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to revoke auth tokens by user: %w", err)
	}
	return revoked, nil
}
