// Package hasher implements password hashing with bcrypt.
package hasher

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"

	"github.com/dtroode/learnhub-auth/internal/model"
)

var _ model.PasswordHasher = (*Bcrypt)(nil)

// Bcrypt hashes passwords with bcrypt. Concurrent computations are capped so
// hashing bursts cannot starve request handling of CPU.
type Bcrypt struct {
	cost int
	sem  *semaphore.Weighted
}

// NewBcrypt creates a hasher with the given cost and concurrency cap.
// An out-of-range cost falls back to bcrypt.DefaultCost.
func NewBcrypt(cost int, maxConcurrent int64) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &Bcrypt{
		cost: cost,
		sem:  semaphore.NewWeighted(maxConcurrent),
	}
}

// MaxPasswordBytes is the longest input bcrypt accepts.
const MaxPasswordBytes = 72

// Hash returns the bcrypt digest of plaintext. Inputs over MaxPasswordBytes
// fail with model.ErrPasswordTooLong.
func (b *Bcrypt) Hash(ctx context.Context, plaintext string) ([]byte, error) {
	if len(plaintext) > MaxPasswordBytes {
		return nil, model.ErrPasswordTooLong
	}

	if err := b.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("failed to acquire hasher slot: %w", err)
	}
	defer b.sem.Release(1)

	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), b.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	return digest, nil
}

// Verify reports whether plaintext matches digest. A nil digest never matches.
func (b *Bcrypt) Verify(ctx context.Context, plaintext string, digest []byte) (bool, error) {
	if len(digest) == 0 {
		return false, nil
	}

	if err := b.sem.Acquire(ctx, 1); err != nil {
		return false, fmt.Errorf("failed to acquire hasher slot: %w", err)
	}
	defer b.sem.Release(1)

	err := bcrypt.CompareHashAndPassword(digest, []byte(plaintext))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to compare password: %w", err)
	}
	return true, nil
}
