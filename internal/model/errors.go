package model

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidCredentials indicates an email/password mismatch. Unknown
	// email and wrong password are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTokenExpired indicates a refresh token past its expiry.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenRevoked indicates a refresh token that was revoked or rotated.
	ErrTokenRevoked = errors.New("token revoked")

	// ErrTokenMismatch indicates a presented token that does not match the
	// stored hash for its JTI.
	ErrTokenMismatch = errors.New("token mismatch")
)
