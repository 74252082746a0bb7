// Package common defines shared constants and sentinel errors used across
// the Bayan platform. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Validation errors.
	ErrEmailTaken = errors.New("email already registered")

	// ErrCryptoFailure covers encryption and decryption failures (tampered
	// ciphertext, wrong key, malformed blob). The vault treats it as
	// "no prior data" rather than a fatal condition.
	ErrCryptoFailure = errors.New("crypto failure")

	// ErrInvalidToken is the single failure value for token verification.
	// Expired, malformed, forged and wrong-algorithm tokens all map here so
	// callers cannot distinguish why verification failed.
	ErrInvalidToken = errors.New("invalid token")

	// ErrInvalidCredentials is returned on a failed login. It deliberately
	// does not say whether the email or the secret was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrProtectedIdentity is returned when deleting the bootstrap admin.
	ErrProtectedIdentity = errors.New("identity is protected")
)
