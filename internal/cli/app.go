package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"github.com/istatata/bayan/internal/assistant"
	"github.com/istatata/bayan/internal/config"
	"github.com/istatata/bayan/internal/cryptox"
	"github.com/istatata/bayan/internal/guard"
	"github.com/istatata/bayan/internal/logging"
	"github.com/istatata/bayan/internal/services"
	"github.com/istatata/bayan/internal/session"
	"github.com/istatata/bayan/internal/storage"
	"github.com/istatata/bayan/internal/token"
	"github.com/istatata/bayan/internal/vault"
)

// App wires the trust stack and the application services for the console.
type App struct {
	config   *config.Config
	log      logging.Logger
	session  *session.Store
	users    *services.UserService
	lessons  *services.LessonService
	transfer *services.TransferService
	tutor    *services.TutorService
	reader   *bufio.Reader
	close    func() error

	// updates feeds the prompt: the REPL observes session snapshots like
	// any other surface instead of polling the store.
	updates <-chan session.Snapshot
	snap    session.Snapshot
}

// NewApp builds the full dependency graph from configuration. The secrets
// travel on the config object constructed at process start; nothing here
// reads package-level state.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := storage.InitDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}

	crypto, err := cryptox.NewProvider(cryptox.Params{
		Secret:     c.EncryptionSecret,
		Salt:       c.EncryptionSalt,
		Iterations: c.KeyIterations,
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init crypto: %w", err)
	}

	kv := storage.NewSQLiteRepository(db)
	v := vault.New(kv, crypto, log)
	tokens := token.NewService([]byte(c.TokenSecret), c.AccessTokenTTL, c.RefreshTokenTTL, nil)
	sess := session.NewStore(tokens, kv, log)

	us := services.NewUserService(v, sess, log)
	gate := guard.New(tokens, sess, us.Exists)
	us.AttachGate(gate)
	ls := services.NewLessonService(v, gate, log, nil)
	ts := services.NewTransferService(us, ls, gate, sess, kv, log, nil)
	tutor := services.NewTutorService(assistant.NewHTTPGenerator(c.AssistantEndpoint, c.AssistantAPIKey), gate)

	return &App{
		config:   c,
		log:      log,
		session:  sess,
		users:    us,
		lessons:  ls,
		transfer: ts,
		tutor:    tutor,
		reader:   bufio.NewReader(os.Stdin),
		close:    db.Close,
		updates:  sess.Subscribe(),
	}, nil
}

// Bootstrap loads both collections and only then restores the session, so
// the refresh credential is always resolved against a fully loaded
// identity directory.
func (a *App) Bootstrap(ctx context.Context) error {
	if err := a.users.Init(ctx); err != nil {
		return fmt.Errorf("load identities: %w", err)
	}
	if err := a.lessons.Init(ctx); err != nil {
		return fmt.Errorf("load lessons: %w", err)
	}
	if err := a.session.Restore(ctx, a.users.Users()); err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	return nil
}

// Run starts the REPL and blocks until the user exits or stdin closes.
func (a *App) Run(ctx context.Context) error {
	defer a.close()

	if err := a.Bootstrap(ctx); err != nil {
		return err
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.session.Current().State == session.Authenticated
}

// status drains pending session snapshots and formats the latest one.
// The REPL is single-threaded, so draining at each prompt keeps the line
// current without a background goroutine.
func (a *App) status() string {
	for {
		select {
		case snap := <-a.updates:
			a.snap = snap
		default:
			if a.snap.State == session.Authenticated && a.snap.User != nil {
				return fmt.Sprintf("%s (%s)", a.snap.User.Name, a.snap.User.Role)
			}
			return a.snap.State.String()
		}
	}
}
