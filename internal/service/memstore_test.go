package service

import (
	"bytes"
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dtroode/learnhub-auth/internal/model"
)

// memUserStore enforces login uniqueness under a mutex, the way the unique
// index does in Postgres.
type memUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]model.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[uuid.UUID]model.User)}
}

func (s *memUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, model.ErrNotFound
}

func (s *memUserStore) GetByID(_ context.Context, id uuid.UUID) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return u, nil
}

func (s *memUserStore) Create(_ context.Context, user model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return model.User{}, model.ErrConflict
		}
	}
	s.users[user.ID] = user
	return user, nil
}

func (s *memUserStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

type memTokenStore struct {
	mu     sync.Mutex
	tokens []model.AuthToken
}

func (s *memTokenStore) Create(_ context.Context, token model.AuthToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = append(s.tokens, token)
	return nil
}

func (s *memTokenStore) GetByAccessHash(_ context.Context, accessHash []byte) (model.AuthToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tokens {
		if bytes.Equal(t.AccessTokenHash, accessHash) {
			return t, nil
		}
	}
	return model.AuthToken{}, model.ErrNotFound
}

func (s *memTokenStore) RevokeAllByUser(_ context.Context, userID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for i := range s.tokens {
		if s.tokens[i].UserID == userID && s.tokens[i].Usable() {
			s.tokens[i].Expired = true
			s.tokens[i].Revoked = true
			n++
		}
	}
	return n, nil
}
