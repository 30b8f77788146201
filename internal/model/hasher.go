package model

import "context"

// PasswordHasher hashes and verifies local passwords.
type PasswordHasher interface {
	Hash(ctx context.Context, plaintext string) ([]byte, error)
	Verify(ctx context.Context, plaintext string, digest []byte) (bool, error)
}
