// Package common defines shared constants and sentinel errors used across
// the server, the API client and the CLI. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Infrastructure failures. Repositories and signers wrap the original
	// cause with these so it stays reachable through errors.Is / errors.As.
	ErrStorage = errors.New("db error")
	ErrSigner  = errors.New("token signing error")

	// Credential errors returned by the credential service.
	ErrDuplicateAccount   = errors.New("credentials already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidPassword    = errors.New("invalid password")

	// Resource ownership.
	ErrAccessDenied = errors.New("access to resources denied")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Configuration.
	ErrSecretNotSet = errors.New("secret not set")

	// Service-level catch-all.
	ErrorInternal = errors.New("internal error")
)
