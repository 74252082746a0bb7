package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/istatata/bayan/internal/cryptox"
	"github.com/istatata/bayan/internal/guard"
	"github.com/istatata/bayan/internal/logging"
	"github.com/istatata/bayan/internal/session"
	"github.com/istatata/bayan/internal/storage"
	"github.com/istatata/bayan/internal/token"
	"github.com/istatata/bayan/internal/vault"
)

// fixture wires the full trust stack over an in-memory database, the way
// the CLI bootstrap does.
type fixture struct {
	kv       storage.Repository
	vault    *vault.Vault
	tokens   *token.Service
	session  *session.Store
	gate     *guard.Gate
	users    *UserService
	lessons  *LessonService
	transfer *TransferService
}

func testLogger() logging.Logger {
	return logging.Discard()
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	db, err := storage.InitDatabase(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	crypto, err := cryptox.NewProvider(cryptox.Params{
		Secret:     "services-test-secret",
		Salt:       "services-test-salt",
		Iterations: 100000,
	})
	require.NoError(t, err)

	log := testLogger()
	kv := storage.NewSQLiteRepository(db)
	v := vault.New(kv, crypto, log)
	tokens := token.NewService([]byte("services-test-signing"), 15*time.Minute, 7*24*time.Hour, nil)
	sess := session.NewStore(tokens, kv, log)

	us := NewUserService(v, sess, log)
	gate := guard.New(tokens, sess, us.Exists)
	us.AttachGate(gate)
	ls := NewLessonService(v, gate, log, nil)
	ts := NewTransferService(us, ls, gate, sess, kv, log, nil)

	// Bootstrap order: collections load first, then session restoration.
	require.NoError(t, us.Init(ctx))
	require.NoError(t, ls.Init(ctx))
	require.NoError(t, sess.Restore(ctx, us.Users()))

	return &fixture{kv: kv, vault: v, tokens: tokens, session: sess, gate: gate, users: us, lessons: ls, transfer: ts}
}

func (f *fixture) loginAdmin(t *testing.T) {
	t.Helper()
	require.NoError(t, f.session.Login(context.Background(), f.users.Users(), "omar.aitloutou@ista.ma", "admin"))
}

func (f *fixture) loginTrainee(t *testing.T) {
	t.Helper()
	require.NoError(t, f.session.Login(context.Background(), f.users.Users(), "student@ista.ma", "123"))
}
