// Package oidc verifies identity assertions (OpenID Connect ID tokens) issued
// by an external provider such as Google.
package oidc

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/dtroode/learnhub-auth/internal/logger"
	"github.com/dtroode/learnhub-auth/internal/model"
)

var _ model.IdentityVerifier = (*Verifier)(nil)

type idTokenClaims struct {
	Email         string `json:"email"`
	EmailVerified *bool  `json:"email_verified"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
}

// Verifier checks ID token signature, issuer, expiry and audience.
type Verifier struct {
	verifier *oidc.IDTokenVerifier
	timeout  time.Duration
	logger   *logger.Logger
}

// New creates a Verifier that fetches signing keys from jwksURL on demand.
// No network call is made until the first verification.
func New(ctx context.Context, issuer, jwksURL string, timeout time.Duration, logger *logger.Logger) *Verifier {
	return NewWithKeySet(issuer, oidc.NewRemoteKeySet(ctx, jwksURL), timeout, logger)
}

// NewWithKeySet creates a Verifier over an explicit key set.
func NewWithKeySet(issuer string, keySet oidc.KeySet, timeout time.Duration, logger *logger.Logger) *Verifier {
	return &Verifier{
		// Audience is checked per call against the caller's expected value.
		verifier: oidc.NewVerifier(issuer, keySet, &oidc.Config{SkipClientIDCheck: true}),
		timeout:  timeout,
		logger:   logger,
	}
}

// Verify validates assertionToken and returns the verified profile. Every
// failure, including timeouts and an unreachable key endpoint, is reported as
// model.ErrInvalidAssertion.
func (v *Verifier) Verify(ctx context.Context, assertionToken, expectedAudience string) (model.VerifiedIdentity, error) {
	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	identity, err := v.verify(ctx, assertionToken, expectedAudience)
	if err != nil {
		v.logger.Warn("OIDC verifier: assertion rejected",
			"error", err.Error())
		return model.VerifiedIdentity{}, model.ErrInvalidAssertion
	}

	return identity, nil
}

func (v *Verifier) verify(ctx context.Context, assertionToken, expectedAudience string) (model.VerifiedIdentity, error) {
	if expectedAudience == "" {
		return model.VerifiedIdentity{}, fmt.Errorf("expected audience is not configured")
	}

	idToken, err := v.verifier.Verify(ctx, assertionToken)
	if err != nil {
		return model.VerifiedIdentity{}, fmt.Errorf("failed to verify id token: %w", err)
	}

	if !slices.Contains(idToken.Audience, expectedAudience) {
		return model.VerifiedIdentity{}, fmt.Errorf("audience mismatch: %v", idToken.Audience)
	}

	var claims idTokenClaims
	if err := idToken.Claims(&claims); err != nil {
		return model.VerifiedIdentity{}, fmt.Errorf("failed to parse id token claims: %w", err)
	}

	email := strings.TrimSpace(claims.Email)
	if email == "" {
		return model.VerifiedIdentity{}, fmt.Errorf("id token has no email")
	}
	if claims.EmailVerified != nil && !*claims.EmailVerified {
		return model.VerifiedIdentity{}, fmt.Errorf("email is not verified by provider")
	}

	v.logger.Debug("OIDC verifier: assertion verified",
		"issuer", idToken.Issuer,
		"expiry_unix", idToken.Expiry.Unix())

	return model.VerifiedIdentity{
		Email:      email,
		GivenName:  claims.GivenName,
		FamilyName: claims.FamilyName,
	}, nil
}
