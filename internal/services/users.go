// Package services contains the application services of the platform: user
// and lesson management behind the permission gate, dataset export/import,
// and the tutoring assistant. Every mutating operation checks the gate
// first; if the check fails, no part of the mutation is observable.
package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/istatata/bayan/internal/common"
	"github.com/istatata/bayan/internal/cryptox"
	"github.com/istatata/bayan/internal/guard"
	"github.com/istatata/bayan/internal/logging"
	"github.com/istatata/bayan/internal/models"
	"github.com/istatata/bayan/internal/session"
	"github.com/istatata/bayan/internal/vault"
)

// UserService owns the in-memory identity collection and is its sole
// writer. Mutations run under one lock so every save reflects the state
// the mutation itself observed.
type UserService struct {
	vault   *vault.Vault
	session *session.Store
	gate    *guard.Gate
	log     logging.Logger

	mu    sync.Mutex
	users []models.User
}

func NewUserService(v *vault.Vault, sess *session.Store, log logging.Logger) *UserService {
	return &UserService{vault: v, session: sess, log: log}
}

// AttachGate wires the permission gate. The gate itself resolves subjects
// through this service, so it is attached after construction.
func (s *UserService) AttachGate(g *guard.Gate) { s.gate = g }

// Init loads the identity collection, falling back to the seed dataset.
// Must complete before any mutation and before session restoration.
func (s *UserService) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vault.Load(ctx, vault.KeyIdentities, &s.users, models.SeedUsers())
}

// Users returns a copy of the identity directory.
func (s *UserService) Users() []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.User, len(s.users))
	copy(out, s.users)
	return out
}

// Exists reports whether an identity id is present. Used by the permission
// gate to fail closed on deleted subjects.
func (s *UserService) Exists(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.FindUserByID(s.users, id) != nil
}

// Add creates a new identity. The secret is hashed before storage; the
// plaintext is discarded. Defaults to the trainee role.
func (s *UserService) Add(ctx context.Context, u models.User, secret string) (models.User, error) {
	if err := s.gate.Require(ctx, models.RoleAdmin); err != nil {
		return models.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if models.FindUserByEmail(s.users, u.Email) != nil {
		return models.User{}, common.ErrEmailTaken
	}

	u.ID = uuid.NewString()
	u.PasswordDigest = cryptox.HashCredential(secret)
	if !u.Role.Valid() {
		u.Role = models.RoleTrainee
	}

	next := append(append([]models.User(nil), s.users...), u)
	if err := s.vault.Save(ctx, vault.KeyIdentities, next); err != nil {
		return models.User{}, fmt.Errorf("add user: %w", err)
	}
	s.users = next

	s.log.Info(ctx, "user added", "user", u.ID, "role", u.Role)
	return u, nil
}

// Update edits profile fields (name, email, specialization) of an existing
// identity. It never touches the password digest: a password change must be
// signalled explicitly via ChangePassword, not inferred from field values.
func (s *UserService) Update(ctx context.Context, u models.User) error {
	if err := s.gate.Require(ctx, models.RoleAdmin); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing := models.FindUserByID(s.users, u.ID)
	if existing == nil {
		return common.ErrNotFound
	}
	if other := models.FindUserByEmail(s.users, u.Email); other != nil && other.ID != u.ID {
		return common.ErrEmailTaken
	}

	next := make([]models.User, len(s.users))
	copy(next, s.users)
	for i := range next {
		if next[i].ID == u.ID {
			next[i].Name = u.Name
			next[i].Email = u.Email
			next[i].Specialization = u.Specialization
			u = next[i]
			break
		}
	}

	if err := s.vault.Save(ctx, vault.KeyIdentities, next); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	s.users = next
	s.session.RefreshIdentity(u)
	return nil
}

// ChangePassword replaces the stored digest of an identity.
func (s *UserService) ChangePassword(ctx context.Context, id, newSecret string) error {
	if err := s.gate.Require(ctx, models.RoleAdmin); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if models.FindUserByID(s.users, id) == nil {
		return common.ErrNotFound
	}

	next := make([]models.User, len(s.users))
	copy(next, s.users)
	for i := range next {
		if next[i].ID == id {
			next[i].PasswordDigest = cryptox.HashCredential(newSecret)
			break
		}
	}

	if err := s.vault.Save(ctx, vault.KeyIdentities, next); err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	s.users = next

	s.log.Info(ctx, "password changed", "user", id)
	return nil
}

// Delete removes an identity. The bootstrap admin is refused.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.gate.Require(ctx, models.RoleAdmin); err != nil {
		return err
	}

	if id == models.SeedAdminID {
		return common.ErrProtectedIdentity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if models.FindUserByID(s.users, id) == nil {
		return common.ErrNotFound
	}

	next := make([]models.User, 0, len(s.users)-1)
	for _, u := range s.users {
		if u.ID != id {
			next = append(next, u)
		}
	}

	if err := s.vault.Save(ctx, vault.KeyIdentities, next); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	s.users = next

	s.log.Info(ctx, "user deleted", "user", id)
	return nil
}

// Replace swaps the whole identity collection (import path).
func (s *UserService) Replace(ctx context.Context, users []models.User) error {
	if err := s.gate.Require(ctx, models.RoleAdmin); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := append([]models.User(nil), users...)
	if err := s.vault.Save(ctx, vault.KeyIdentities, next); err != nil {
		return fmt.Errorf("replace users: %w", err)
	}
	s.users = next
	return nil
}
