package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/zerotask/zerotask/internal/client/api"
	"github.com/zerotask/zerotask/internal/client/config"
	"github.com/zerotask/zerotask/internal/client/legacy"
	"github.com/zerotask/zerotask/internal/client/models"
	"github.com/zerotask/zerotask/internal/client/services"
	"github.com/zerotask/zerotask/internal/client/storage"
	"github.com/zerotask/zerotask/internal/client/view"
	"github.com/zerotask/zerotask/internal/logging"
)

// App wires the task engine to an interactive terminal session. One App
// owns one database handle and one loaded task collection.
type App struct {
	config   *config.Config
	log      logging.Logger
	db       *sql.DB
	backend  *storage.Backend
	api      *api.Client
	tasks    *services.TaskService
	audit    *services.AuditRecorder
	auth     *services.AuthService
	reader   *bufio.Reader
	loggedIn bool

	// session-local view state driving what list renders
	query  string
	filter view.StatusFilter
}

func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	if err := os.MkdirAll(c.DataDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := storage.OpenDatabase(ctx, c.DatabasePath())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	var (
		backend   *storage.Backend
		apiClient *api.Client
	)
	switch c.Backend {
	case config.BackendRemote:
		apiClient = api.NewClient(c.ServerEndpointAddr, c.RequestTimeout)
		backend = storage.NewRemoteBackend(apiClient, db)
	default:
		backend = storage.NewSQLiteBackend(db)
	}

	audit := services.NewAuditRecorder(backend.Logs, log)
	app := &App{
		config:  c,
		log:     log,
		db:      db,
		backend: backend,
		api:     apiClient,
		tasks:   services.NewTaskService(backend, audit, log),
		audit:   audit,
		auth:    services.NewAuthService(backend.Metadata),
		reader:  bufio.NewReader(os.Stdin),
		filter:  view.FilterAll,
	}
	return app, nil
}

// Close releases the database handle.
func (a *App) Close() error {
	return a.db.Close()
}

// Run authenticates the session, loads the collection, and hands control to
// the REPL until the user exits or input hits EOF.
func (a *App) Run(ctx context.Context) error {
	for !a.loggedIn {
		if err := a.authenticate(ctx); err != nil {
			return err
		}
	}

	a.migrateLegacy(ctx)

	if err := a.audit.Load(ctx); err != nil {
		a.log.Warn(ctx, "failed to load audit log", "error", err)
	}
	if err := a.tasks.Load(ctx); err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}

	printlnFn("Welcome to ZeroTask (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
	return nil
}

// migrateLegacy drains the legacy flat-file store into the active backend.
// It runs after authentication so that in remote mode the copied tasks go out
// with a session token; a failure is retried on the next start.
func (a *App) migrateLegacy(ctx context.Context) {
	if err := storage.MigrateOnce(ctx, a.log, legacy.NewStore(a.config.DataDir), a.backend); err != nil {
		a.log.Warn(ctx, "legacy data migration failed, will retry on next start", "error", err)
	}
}

func (a *App) isLoggedIn() bool {
	return a.loggedIn
}

func (a *App) getStatus() string {
	visible := a.visible()
	s := fmt.Sprintf("%d task(s)", len(visible))
	if a.query != "" || a.filter != view.FilterAll {
		s += " [filtered]"
	}
	return s
}

// visible applies the session's query and status filter to the collection.
func (a *App) visible() []models.Task {
	return view.ComputeVisible(a.tasks.List(), a.query, a.filter)
}

// taskAt resolves a 1-based index into the currently visible list.
func (a *App) taskAt(arg string) (models.Task, error) {
	var n int
	if _, err := fmt.Sscanf(arg, "%d", &n); err != nil {
		return models.Task{}, fmt.Errorf("not a task number: %q", arg)
	}
	visible := a.visible()
	if n < 1 || n > len(visible) {
		return models.Task{}, fmt.Errorf("no task #%d in the current list", n)
	}
	return visible[n-1], nil
}
