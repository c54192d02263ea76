// Package common defines shared constants and sentinel errors used across
// client and server layers of ZeroTask. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Validation errors (currently only an empty task title).
	ErrValidation = errors.New("validation error")

	// Backing-store I/O failures, wrapped at the adapter boundary.
	ErrPersistence = errors.New("persistence error")

	// Legacy-data copy failures. Non-fatal: the legacy store is left
	// untouched and migration is retried on the next start.
	ErrMigration = errors.New("migration error")

	// Service-level errors (generic/internal flow control).
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)
