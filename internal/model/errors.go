package model

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("login identifier already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidSignature   = errors.New("token signature is invalid")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrInvalidAssertion   = errors.New("identity assertion is invalid")
	ErrPasswordTooLong    = errors.New("password exceeds 72 bytes")
)
