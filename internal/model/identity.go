package model

import "context"

// VerifiedIdentity is the profile returned by the external identity provider
// after an assertion has been verified.
type VerifiedIdentity struct {
	Email      string
	GivenName  string
	FamilyName string
}

// IdentityVerifier validates third-party identity assertions.
// Every failure is reported as ErrInvalidAssertion.
type IdentityVerifier interface {
	Verify(ctx context.Context, assertionToken, expectedAudience string) (VerifiedIdentity, error)
}
