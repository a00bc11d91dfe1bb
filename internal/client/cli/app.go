package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/dmitrijs2005/sitecms/internal/client/catalog"
	"github.com/dmitrijs2005/sitecms/internal/client/client"
	"github.com/dmitrijs2005/sitecms/internal/client/config"
	"github.com/dmitrijs2005/sitecms/internal/client/repositories/stash"
	"github.com/dmitrijs2005/sitecms/internal/client/services"
	"github.com/dmitrijs2005/sitecms/internal/filex"
	"github.com/dmitrijs2005/sitecms/internal/logging"
)

// stateFile is the sqlite database kept inside the state directory.
const stateFile = "state.db"

type App struct {
	config  *config.Config
	db      *sql.DB
	session services.SessionService
	gateway client.Gateway
	stash   stash.Repository
	log     logging.Logger
	reader  *bufio.Reader
	out     io.Writer

	editor   *services.Editor
	loggedIn atomic.Bool
}

// NewApp opens local state under c.StateDir and wires the session, the
// Gateway client and the logger. Call Close when done.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.New(os.Stderr, c.LogLevel, c.LogFormat)

	dir, err := filex.EnsureDir(c.StateDir)
	if err != nil {
		return nil, fmt.Errorf("state dir: %w", err)
	}

	repos, err := client.InitDatabase(ctx, filepath.Join(dir, stateFile))
	if err != nil {
		log.Error(ctx, "error initializing database", "err", err)
		return nil, err
	}

	session := services.NewSessionService(repos.DB)
	gw := client.NewHTTPGateway(c.GatewayBaseURL, c.RequestTimeout, session, log.With("component", "gateway"))

	return &App{
		config:  c,
		db:      repos.DB,
		session: session,
		gateway: gw,
		stash:   repos.Stash,
		log:     log,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

// Run resumes the previous session and blocks in the REPL until the user
// exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()
	a.resume(ctx)
	runREPL(ctx, a, a.status, a.reader)
	return nil
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) resume(ctx context.Context) {
	info, err := a.session.Info(ctx)
	if err != nil {
		a.log.Warn(ctx, "stored session is unusable", "err", err)
	}
	a.loggedIn.Store(info.LoggedIn)
	if !info.LoggedIn {
		fmt.Fprintln(a.out, "Not logged in. Changes need a token: type 'login' to paste one.")
	}

	name, err := a.session.LastEntity(ctx)
	if err != nil || name == "" {
		return
	}
	if e, ok := catalog.Lookup(name); ok {
		_ = a.open(ctx, e)
	}
}

func (a *App) isLoggedIn() bool {
	return a.loggedIn.Load()
}

func (a *App) hasEntity() bool {
	return a.editor != nil
}

func (a *App) status() string {
	entity := "-"
	if a.editor != nil {
		entity = a.editor.Entity().Name
	}
	if a.isLoggedIn() {
		return entity
	}
	return entity + " (logged out)"
}

// open switches the console to entity and loads its collection.
func (a *App) open(ctx context.Context, e catalog.Entity) error {
	a.editor = a.newEditor(e)
	if err := a.session.SetLastEntity(ctx, e.Name); err != nil {
		a.log.Warn(ctx, "cannot remember entity", "entity", e.Name, "err", err)
	}
	if err := a.editor.Load(ctx); err != nil {
		return fmt.Errorf("load %s: %w", e.DisplayName, err)
	}
	fmt.Fprintf(a.out, "%s: %d item(s)\n", e.DisplayName, a.editor.Len())
	return nil
}

func (a *App) newEditor(e catalog.Entity) *services.Editor {
	opts := []services.EditorOption{
		services.WithNotifier(services.NotifierFunc(a.notify)),
		services.WithLogger(a.log),
		services.WithUnauthorizedHook(a.onUnauthorized),
	}
	if a.stash != nil {
		opts = append(opts, services.WithStash(a.stash))
	}
	return services.NewEditor(e, a.gateway, opts...)
}

func (a *App) notify(n services.Notice) {
	mark := "OK"
	if n.Kind == services.NoticeFailure {
		mark = "!!"
	}
	fmt.Fprintf(a.out, "[%s] %s\n", mark, n.Message)
}

// onUnauthorized drops the refused token so the next change prompts for a
// new one instead of failing again.
func (a *App) onUnauthorized(ctx context.Context) {
	if err := a.session.Logout(ctx); err != nil {
		a.log.Error(ctx, "logout after refused token failed", "err", err)
	}
	a.loggedIn.Store(false)
	fmt.Fprintln(a.out, "The Gateway refused the access token. Type 'login' to paste a new one.")
}
