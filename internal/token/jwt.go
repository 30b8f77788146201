package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dtroode/learnhub-auth/internal/model"
)

var _ model.TokenSigner = (*JWT)(nil)

// Claims represents JWT claims with token type, role and user ID.
type Claims struct {
	jwt.RegisteredClaims
	UserID    uuid.UUID       `json:"uid"`
	Role      model.Role      `json:"role"`
	TokenType model.TokenType `json:"typ"`
}

// JWT implements TokenSigner backed by symmetric HMAC.
type JWT struct {
	secretKey  []byte
	keyID      string
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewJWT creates a new JWT signer. keyID is written to the token header and
// must match on verification.
func NewJWT(secretKey, keyID, issuer string, accessTTL, refreshTTL time.Duration) *JWT {
	return &JWT{
		secretKey:  []byte(secretKey),
		keyID:      keyID,
		issuer:     issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// IssueAccessToken creates a short-lived access token.
func (j *JWT) IssueAccessToken(user model.User) (string, error) {
	token, err := j.issue(user, model.TokenTypeAccess, j.accessTTL)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return token, nil
}

// IssueRefreshToken creates a long-lived refresh token.
func (j *JWT) IssueRefreshToken(user model.User) (string, error) {
	token, err := j.issue(user, model.TokenTypeRefresh, j.refreshTTL)
	if err != nil {
		return "", fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return token, nil
}

func (j *JWT) issue(user model.User, typ model.TokenType, ttl time.Duration) (string, error) {
	now := j.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.Email,
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:    user.ID,
		Role:      user.Role,
		TokenType: typ,
	})
	token.Header["kid"] = j.keyID

	return token.SignedString(j.secretKey)
}

// Verify checks signature, key id and claims. Signature is checked before
// expiry so a forged token is never reported as merely expired.
func (j *JWT) Verify(tokenString string) (model.Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, j.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return model.Claims{}, fmt.Errorf("failed to parse token: %w: %v", model.ErrInvalidSignature, err)
	}

	validator := jwt.NewValidator(
		jwt.WithIssuer(j.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(j.now),
	)
	if err := validator.Validate(claims); err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return model.Claims{}, fmt.Errorf("failed to validate token: %w", model.ErrTokenExpired)
		}
		return model.Claims{}, fmt.Errorf("failed to validate token: %w: %v", model.ErrInvalidSignature, err)
	}

	if claims.TokenType != model.TokenTypeAccess && claims.TokenType != model.TokenTypeRefresh {
		return model.Claims{}, fmt.Errorf("unknown token type %q: %w", claims.TokenType, model.ErrInvalidSignature)
	}
	if claims.UserID == uuid.Nil || claims.Subject == "" {
		return model.Claims{}, fmt.Errorf("token has no subject: %w", model.ErrInvalidSignature)
	}
	if claims.IssuedAt == nil {
		return model.Claims{}, fmt.Errorf("token has no issue time: %w", model.ErrInvalidSignature)
	}

	return model.Claims{
		ID:        claims.ID,
		Subject:   claims.Subject,
		UserID:    claims.UserID,
		Role:      claims.Role,
		Type:      claims.TokenType,
		KeyID:     j.keyID,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (j *JWT) keyFunc(t *jwt.Token) (interface{}, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
	}
	if kid, _ := t.Header["kid"].(string); kid != j.keyID {
		return nil, fmt.Errorf("unknown key id %q", kid)
	}
	return j.secretKey, nil
}
