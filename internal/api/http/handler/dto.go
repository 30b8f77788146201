package handler

import "github.com/dtroode/learnhub-auth/internal/model"

type RegisterRequest struct {
	LoginID   string `json:"loginId" validate:"required,email"`
	Password  string `json:"password" validate:"required,maxbytes=72"`
	FirstName string `json:"firstName" validate:"max=100"`
	LastName  string `json:"lastName" validate:"max=100"`
}

type LoginRequest struct {
	LoginID  string `json:"loginId" validate:"required"`
	Password string `json:"password" validate:"required,maxbytes=72"`
}

type FederatedLoginRequest struct {
	AssertionToken string `json:"assertionToken" validate:"required"`
}

type RevokeRequest struct {
	UserID string `json:"userId" validate:"omitempty,uuid"`
}

// Profile is the public view of an account.
type Profile struct {
	ID        string `json:"id"`
	LoginID   string `json:"loginId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

type SessionResponse struct {
	AccessToken  string  `json:"accessToken"`
	RefreshToken string  `json:"refreshToken"`
	Profile      Profile `json:"profile"`
}

type FederatedSessionResponse struct {
	AccessToken string  `json:"accessToken"`
	Profile     Profile `json:"profile"`
}

type RevokeResponse struct {
	Revoked int64 `json:"revoked"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

func newProfile(u model.User) Profile {
	return Profile{
		ID:        u.ID.String(),
		LoginID:   u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      string(u.Role),
	}
}
