// Package models defines the domain types persisted by the platform and the
// bootstrap dataset used when no durable data exists yet.
package models

import "strings"

// Role is the coarse access level carried by user accounts and tokens.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTrainee Role = "trainee"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleTrainee
}

// User is a platform identity. PasswordDigest holds the SHA-256 hex digest
// of the credential; the plaintext is never stored or logged.
//
// Emails are unique case-insensitively; use NormalizeEmail before lookups.
type User struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	PasswordDigest string `json:"password,omitempty"`
	Role           Role   `json:"role"`
	Specialization string `json:"specialization,omitempty"`
}

// NormalizeEmail case-folds an email for uniqueness checks and lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// FindUserByID returns the user with the given id, or nil.
func FindUserByID(users []User, id string) *User {
	for i := range users {
		if users[i].ID == id {
			return &users[i]
		}
	}
	return nil
}

// FindUserByEmail returns the user with the given email (case-insensitive),
// or nil.
func FindUserByEmail(users []User, email string) *User {
	norm := NormalizeEmail(email)
	for i := range users {
		if NormalizeEmail(users[i].Email) == norm {
			return &users[i]
		}
	}
	return nil
}
