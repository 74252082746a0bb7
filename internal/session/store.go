// Package session owns the authenticated session: the in-memory access
// token and identity snapshot, the persisted refresh credential, and the
// restore-on-startup state machine.
//
// The access token and identity live only in process memory. The refresh
// token is the single piece of session state written to durable storage,
// mirroring a server-side cookie split even though both ends of it run in
// this process.
package session

import (
	"context"
	"crypto/subtle"
	"fmt"
	"sync"

	"github.com/istatata/bayan/internal/common"
	"github.com/istatata/bayan/internal/cryptox"
	"github.com/istatata/bayan/internal/logging"
	"github.com/istatata/bayan/internal/models"
	"github.com/istatata/bayan/internal/storage"
	"github.com/istatata/bayan/internal/token"
)

// RefreshTokenKey is the durable storage key holding the refresh
// credential. The token is stored as-is: it is already a signed,
// time-boxed credential, so it is not additionally encrypted.
const RefreshTokenKey = "refresh_token"

// State is the session lifecycle state.
type State int

const (
	Uninitialized State = iota
	Restoring
	Authenticated
	Anonymous
)

func (s State) String() string {
	switch s {
	case Restoring:
		return "restoring"
	case Authenticated:
		return "authenticated"
	case Anonymous:
		return "anonymous"
	default:
		return "uninitialized"
	}
}

// Snapshot is an immutable view of the session handed to observers.
type Snapshot struct {
	State State
	User  *models.User // nil unless Authenticated
}

// Store is the sole writer of session state. UI surfaces subscribe for
// snapshots instead of keeping their own copies.
type Store struct {
	tokens *token.Service
	kv     storage.Repository
	log    logging.Logger

	mu          sync.Mutex
	state       State
	user        *models.User
	accessToken string
	initialized bool
	subs        []chan Snapshot
}

func NewStore(tokens *token.Service, kv storage.Repository, log logging.Logger) *Store {
	return &Store{tokens: tokens, kv: kv, log: log, state: Uninitialized}
}

// Restore attempts silent re-authentication from the persisted refresh
// credential. users must be the fully loaded identity directory: the
// caller sequences Restore after the collection load, so a verified
// subject can never be "missing because still loading".
//
// Restore always ends in Authenticated or Anonymous and flips the
// initialized latch exactly once.
func (s *Store) Restore(ctx context.Context, users []models.User) error {
	s.setState(Restoring, nil, "")

	raw, err := s.kv.Get(ctx, RefreshTokenKey)
	if err != nil {
		s.finishRestore(Anonymous, nil, "")
		return fmt.Errorf("session restore: %w", err)
	}
	if raw == nil {
		s.finishRestore(Anonymous, nil, "")
		return nil
	}

	claims, err := s.tokens.Verify(string(raw))
	if err != nil {
		// Stale or forged credential: drop it and stay logged out.
		_ = s.kv.Delete(ctx, RefreshTokenKey)
		s.finishRestore(Anonymous, nil, "")
		return nil
	}

	u := models.FindUserByID(users, claims.Subject)
	if u == nil {
		// Subject was deleted since the credential was issued. Fail closed.
		_ = s.kv.Delete(ctx, RefreshTokenKey)
		s.finishRestore(Anonymous, nil, "")
		return nil
	}

	access, err := s.tokens.IssueAccessToken(*u)
	if err != nil {
		s.finishRestore(Anonymous, nil, "")
		return fmt.Errorf("session restore: %w", err)
	}

	snapshot := *u
	s.finishRestore(Authenticated, &snapshot, access)
	s.log.Info(ctx, "session restored", "user", u.ID, "role", u.Role)
	return nil
}

// Login authenticates against the identity directory by case-insensitive
// email and credential digest. On success it issues both tokens, persists
// the refresh credential, and stores the access token and identity
// snapshot in memory. On failure nothing changes and the caller learns
// only that the combination was wrong.
func (s *Store) Login(ctx context.Context, users []models.User, email, secret string) error {
	u := models.FindUserByEmail(users, email)

	digest := cryptox.HashCredential(secret)
	if u == nil || subtle.ConstantTimeCompare([]byte(u.PasswordDigest), []byte(digest)) != 1 {
		return common.ErrInvalidCredentials
	}

	access, err := s.tokens.IssueAccessToken(*u)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	refresh, err := s.tokens.IssueRefreshToken(u.ID)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	// Persist first so a storage failure leaves no half-built session.
	if err := s.kv.Set(ctx, RefreshTokenKey, []byte(refresh)); err != nil {
		return fmt.Errorf("login: %w", err)
	}

	snapshot := *u
	s.setState(Authenticated, &snapshot, access)
	s.log.Info(ctx, "login", "user", u.ID, "role", u.Role)
	return nil
}

// Logout clears the in-memory session and deletes the persisted refresh
// credential. Idempotent.
func (s *Store) Logout(ctx context.Context) error {
	s.setState(Anonymous, nil, "")
	if err := s.kv.Delete(ctx, RefreshTokenKey); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// Invalidate transitions to Anonymous after a failed access-token
// verification. Only the in-memory session is dropped: the refresh
// credential stays in durable storage so the next start can silently
// re-authenticate. It is removed by Logout or by Restore when the
// credential itself turns out to be stale.
func (s *Store) Invalidate() {
	s.setState(Anonymous, nil, "")
}

// Current returns the session snapshot.
func (s *Store) Current() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// AccessToken returns the in-memory access token, or "" when anonymous.
func (s *Store) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken
}

// Initialized reports whether restoration has reached a terminal state,
// letting callers distinguish "still checking" from "confirmed logged out".
func (s *Store) Initialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialized
}

// RefreshIdentity updates the in-memory identity snapshot when the current
// user's record was edited elsewhere.
func (s *Store) RefreshIdentity(u models.User) {
	s.mu.Lock()
	if s.user == nil || s.user.ID != u.ID {
		s.mu.Unlock()
		return
	}
	snapshot := u
	s.user = &snapshot
	snap := s.snapshotLocked()
	subs := append([]chan Snapshot(nil), s.subs...)
	s.mu.Unlock()
	notify(subs, snap)
}

// Subscribe registers an observer. Snapshots are delivered best-effort on a
// buffered channel; slow consumers miss intermediate states, never the
// channel itself.
func (s *Store) Subscribe() <-chan Snapshot {
	ch := make(chan Snapshot, 8)
	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()
	return ch
}

func (s *Store) setState(state State, user *models.User, access string) {
	s.mu.Lock()
	s.state = state
	s.user = user
	s.accessToken = access
	snap := s.snapshotLocked()
	subs := append([]chan Snapshot(nil), s.subs...)
	s.mu.Unlock()
	notify(subs, snap)
}

func (s *Store) finishRestore(state State, user *models.User, access string) {
	s.mu.Lock()
	s.state = state
	s.user = user
	s.accessToken = access
	s.initialized = true
	snap := s.snapshotLocked()
	subs := append([]chan Snapshot(nil), s.subs...)
	s.mu.Unlock()
	notify(subs, snap)
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{State: s.state}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	return snap
}

func notify(subs []chan Snapshot, snap Snapshot) {
	for _, ch := range subs {
		select {
		case ch <- snap:
		default:
		}
	}
}
