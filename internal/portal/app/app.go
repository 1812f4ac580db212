// Package app wires the portal components together for the command-line
// front end.
package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/prestige-strategies/academy/internal/portal/identity"
	"github.com/prestige-strategies/academy/internal/portal/payment"
	"github.com/prestige-strategies/academy/internal/portal/session"
	"github.com/prestige-strategies/academy/internal/portal/storage"
	"github.com/prestige-strategies/academy/internal/portal/storage/drivers/memory"
	"github.com/prestige-strategies/academy/internal/portal/storage/drivers/sqlite"
	"github.com/prestige-strategies/academy/pkg/academysdk"
	"github.com/prestige-strategies/academy/pkg/slogx"
)

// Version is set at build time.
var Version = "dev"

// App holds the portal's long-lived objects. Views are built per command.
type App struct {
	Config Config
	Log    *slog.Logger

	Store   storage.Store
	Client  *academysdk.SDKClient
	Admin   *session.Admin
	Student *session.Student

	// Widget is the sign-in button the student flow renders.
	Widget identity.Widget

	in  *bufio.Reader
	out io.Writer
}

// Option customizes New.
type Option func(*App)

// WithIO replaces stdin and stdout.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(a *App) {
		a.in = bufio.NewReader(in)
		a.out = out
	}
}

// WithStore replaces the configured storage driver.
func WithStore(s storage.Store) Option {
	return func(a *App) { a.Store = s }
}

// WithLogger replaces the configured logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) { a.Log = l }
}

// WithWidget replaces the terminal sign-in prompt.
func WithWidget(w identity.Widget) Option {
	return func(a *App) { a.Widget = w }
}

// New opens storage and builds both session managers. Sessions are not
// initialized yet; commands call Initialize on the ones they use.
func New(cfg Config, opts ...Option) (*App, error) {
	a := &App{
		Config: cfg,
		in:     bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.Log == nil {
		a.Log = slogx.New(slogx.Config{
			Service: "portal",
			Version: Version,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
			Output:  os.Stderr,
		})
	}

	if a.Store == nil {
		store, err := openStore(cfg)
		if err != nil {
			return nil, err
		}
		a.Store = store
	}

	if a.Widget == nil {
		a.Widget = &identity.PromptWidget{In: a.in, Out: a.out}
	}

	a.Client = academysdk.NewSDKClient(cfg.BaseURL)
	a.Admin = session.NewAdmin(a.Client, a.Store, session.Options{Logger: a.Log})
	a.Student = session.NewStudent(a.Client, a.Store, session.Options{Logger: a.Log})

	return a, nil
}

func openStore(cfg Config) (storage.Store, error) {
	switch cfg.Storage {
	case StorageMemory:
		return memory.NewStore(), nil
	case StorageSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.StoragePath), 0o700); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
		store, err := sqlite.NewStore(cfg.StoragePath)
		if err != nil {
			return nil, fmt.Errorf("open storage: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage)
	}
}

// Close releases storage.
func (a *App) Close() error {
	return a.Store.Close()
}

// Out is where command output goes.
func (a *App) Out() io.Writer { return a.out }

// StudentSession makes bearer calls with whatever token the student
// session holds at call time.
func (a *App) StudentSession() *academysdk.Session {
	return a.Client.NewSessionFromSource(a.Student)
}

// AdminSession is StudentSession for the admin principal.
func (a *App) AdminSession() *academysdk.Session {
	return a.Client.NewSessionFromSource(a.Admin)
}

// Throttle is the local "recently attempted" guard.
func (a *App) Throttle() *payment.Throttle {
	return payment.NewThrottle(a.Store.Attempts())
}

// InitStudent rehydrates the student session.
func (a *App) InitStudent(ctx context.Context) session.StudentState {
	a.Student.Initialize(ctx)
	return a.Student.State()
}

// InitAdmin rehydrates the admin session.
func (a *App) InitAdmin(ctx context.Context) session.AdminState {
	a.Admin.Initialize(ctx)
	return a.Admin.State()
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// readLine prompts and returns one trimmed line.
func (a *App) readLine(prompt string) (string, error) {
	a.printf("%s", prompt)
	line, err := a.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return trimLine(line), nil
}
