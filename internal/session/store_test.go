package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/istatata/bayan/internal/common"
	"github.com/istatata/bayan/internal/logging"
	"github.com/istatata/bayan/internal/models"
	"github.com/istatata/bayan/internal/storage"
	"github.com/istatata/bayan/internal/token"
)

func newTestStore(t *testing.T) (*Store, storage.Repository, *token.Service) {
	t.Helper()

	db, err := storage.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	kv := storage.NewSQLiteRepository(db)
	tokens := token.NewService([]byte("session-test-secret"), 15*time.Minute, 7*24*time.Hour, nil)
	return NewStore(tokens, kv, logging.Discard()), kv, tokens
}

func TestLogin_Success(t *testing.T) {
	s, kv, tokens := newTestStore(t)
	ctx := context.Background()
	users := models.SeedUsers()

	require.NoError(t, s.Login(ctx, users, "omar.aitloutou@ista.ma", "admin"))

	snap := s.Current()
	assert.Equal(t, Authenticated, snap.State)
	require.NotNil(t, snap.User)
	assert.Equal(t, models.SeedAdminID, snap.User.ID)

	claims, err := tokens.Verify(s.AccessToken())
	require.NoError(t, err)
	assert.Equal(t, models.SeedAdminID, claims.Subject)
	assert.Equal(t, models.RoleAdmin, claims.Role)

	raw, err := kv.Get(ctx, RefreshTokenKey)
	require.NoError(t, err)
	require.NotNil(t, raw)
	refresh, err := tokens.Verify(string(raw))
	require.NoError(t, err)
	assert.Equal(t, models.SeedAdminID, refresh.Subject)
	assert.Empty(t, refresh.Role)
}

func TestLogin_EmailIsCaseInsensitive(t *testing.T) {
	s, _, _ := newTestStore(t)

	err := s.Login(context.Background(), models.SeedUsers(), "OMAR.AITLOUTOU@ISTA.MA", "admin")
	require.NoError(t, err)
	assert.Equal(t, Authenticated, s.Current().State)
}

func TestLogin_NoMatchLeavesNoState(t *testing.T) {
	s, kv, _ := newTestStore(t)
	ctx := context.Background()
	users := models.SeedUsers()

	// Unknown email and wrong password must fail identically.
	err := s.Login(ctx, users, "admin@x.com", "s")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)

	err = s.Login(ctx, users, "omar.aitloutou@ista.ma", "wrong")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)

	assert.Empty(t, s.AccessToken())
	assert.Nil(t, s.Current().User)

	raw, err := kv.Get(ctx, RefreshTokenKey)
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestLogout_Idempotent(t *testing.T) {
	s, kv, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Login(ctx, models.SeedUsers(), "student@ista.ma", "123"))
	require.NoError(t, s.Logout(ctx))
	require.NoError(t, s.Logout(ctx))

	assert.Equal(t, Anonymous, s.Current().State)
	assert.Empty(t, s.AccessToken())

	raw, err := kv.Get(ctx, RefreshTokenKey)
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestInvalidate_KeepsRefreshCredential(t *testing.T) {
	s, kv, tokens := newTestStore(t)
	ctx := context.Background()
	users := models.SeedUsers()

	require.NoError(t, s.Login(ctx, users, "omar.aitloutou@ista.ma", "admin"))

	s.Invalidate()
	assert.Equal(t, Anonymous, s.Current().State)
	assert.Empty(t, s.AccessToken())

	// Only the in-memory session is dropped; the refresh credential stays.
	raw, err := kv.Get(ctx, RefreshTokenKey)
	require.NoError(t, err)
	require.NotNil(t, raw)

	restarted := NewStore(tokens, kv, logging.Discard())
	require.NoError(t, restarted.Restore(ctx, users))
	assert.Equal(t, Authenticated, restarted.Current().State)
}

func TestRestore_NoCredentialEndsAnonymous(t *testing.T) {
	s, _, _ := newTestStore(t)

	require.NoError(t, s.Restore(context.Background(), models.SeedUsers()))
	assert.Equal(t, Anonymous, s.Current().State)
	assert.True(t, s.Initialized())
}

func TestRestore_AfterLoginOnFreshStore(t *testing.T) {
	s, kv, tokens := newTestStore(t)
	ctx := context.Background()
	users := models.SeedUsers()

	require.NoError(t, s.Login(ctx, users, "omar.aitloutou@ista.ma", "admin"))

	// Simulate a process restart: new store, same durable storage.
	restarted := NewStore(tokens, kv, logging.Discard())
	require.NoError(t, restarted.Restore(ctx, users))

	snap := restarted.Current()
	assert.Equal(t, Authenticated, snap.State)
	require.NotNil(t, snap.User)
	assert.Equal(t, models.SeedAdminID, snap.User.ID)
	assert.NotEmpty(t, restarted.AccessToken())
}

func TestRestore_LoginThenLogoutThenRestart(t *testing.T) {
	s, kv, tokens := newTestStore(t)
	ctx := context.Background()
	users := models.SeedUsers()

	require.NoError(t, s.Login(ctx, users, "omar.aitloutou@ista.ma", "admin"))
	require.NoError(t, s.Logout(ctx))

	restarted := NewStore(tokens, kv, logging.Discard())
	require.NoError(t, restarted.Restore(ctx, users))
	assert.Equal(t, Anonymous, restarted.Current().State)
	assert.True(t, restarted.Initialized())
}

func TestRestore_ExpiredCredential(t *testing.T) {
	_, kv, _ := newTestStore(t)
	ctx := context.Background()

	// Issue a refresh token that is already expired.
	past := time.Now().Add(-30 * 24 * time.Hour)
	expiredIssuer := token.NewService([]byte("session-test-secret"), time.Minute, 7*24*time.Hour,
		func() time.Time { return past })
	refresh, err := expiredIssuer.IssueRefreshToken(models.SeedAdminID)
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, RefreshTokenKey, []byte(refresh)))

	tokens := token.NewService([]byte("session-test-secret"), time.Minute, 7*24*time.Hour, nil)
	s := NewStore(tokens, kv, logging.Discard())
	require.NoError(t, s.Restore(ctx, models.SeedUsers()))

	assert.Equal(t, Anonymous, s.Current().State)

	// The stale credential is removed so it is not retried next start.
	raw, err := kv.Get(ctx, RefreshTokenKey)
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestRestore_DeletedSubjectFailsClosed(t *testing.T) {
	s, kv, tokens := newTestStore(t)
	ctx := context.Background()
	users := models.SeedUsers()

	require.NoError(t, s.Login(ctx, users, "student@ista.ma", "123"))

	// The trainee is deleted before the next start.
	restarted := NewStore(tokens, kv, logging.Discard())
	require.NoError(t, restarted.Restore(ctx, users[:1]))
	assert.Equal(t, Anonymous, restarted.Current().State)
}

func TestSubscribe_ObserversSeeTransitions(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	ch := s.Subscribe()

	require.NoError(t, s.Login(ctx, models.SeedUsers(), "student@ista.ma", "123"))

	select {
	case snap := <-ch:
		assert.Equal(t, Authenticated, snap.State)
		require.NotNil(t, snap.User)
		assert.Equal(t, "trainee-1", snap.User.ID)
	default:
		t.Fatal("expected a snapshot after login")
	}
}

func TestRefreshIdentity_UpdatesOnlyCurrentUser(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()
	users := models.SeedUsers()

	require.NoError(t, s.Login(ctx, users, "student@ista.ma", "123"))

	updated := users[1]
	updated.Specialization = "شبكات"
	s.RefreshIdentity(updated)
	assert.Equal(t, "شبكات", s.Current().User.Specialization)

	other := users[0]
	other.Name = "changed"
	s.RefreshIdentity(other)
	assert.Equal(t, "trainee-1", s.Current().User.ID)
}
