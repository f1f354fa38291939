package cli

import (
	"context"
	"io"
	"time"

	"gitwise/internal/actions"
	"gitwise/internal/api"
	"gitwise/internal/cache"
	"gitwise/internal/config"
	"gitwise/internal/notify"
	"gitwise/internal/observability"
	"gitwise/internal/session"
	"gitwise/internal/store"
)

// App bundles the wired subsystems a command operates on.
type App struct {
	Config  *config.Config
	Client  *api.Client
	Service *actions.Service
	Manager *session.Manager
	Out     *OutputFormatter
}

// AppFactory builds the App once global flags are parsed. Tests swap in
// a factory pointing at a stub backend.
type AppFactory func(ctx context.Context, opts *RootOptions, out, errOut io.Writer) (*App, error)

// DefaultAppFactory wires the real client against the configured
// backend and restores the persisted session.
func DefaultAppFactory(ctx context.Context, opts *RootOptions, out, errOut io.Writer) (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "load configuration", err)
	}
	observability.SetLevel(cfg.LogLevel)
	if opts.Verbose {
		observability.SetLevel("debug")
	}
	cache.InitRedis(cfg.RedisURL)

	client := api.NewClient(cfg.TrimmedBackendURL(), time.Duration(cfg.RequestTimeout)*time.Second)

	snapshots, err := store.OpenSnapshotStore(cfg.SnapshotPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "open session snapshot", err)
	}

	var notifier notify.Notifier = notify.NewWriter(errOut)
	if opts.Format == "json" {
		// toast lines would corrupt the JSON stream
		notifier = notify.Silent{}
	}

	svc := actions.NewService(client, store.New(), notifier, actions.Options{
		PerPage:     cfg.PerPage,
		FrontendURL: cfg.FrontendURL,
	})
	mgr := session.NewManager(svc, client, snapshots)
	if err := mgr.Bootstrap(ctx); err != nil {
		return nil, WrapExitError(ExitCommandError, "restore session", err)
	}

	return &App{
		Config:  cfg,
		Client:  client,
		Service: svc,
		Manager: mgr,
		Out: &OutputFormatter{
			Format:    opts.Format,
			Writer:    out,
			ErrWriter: errOut,
			Verbose:   opts.Verbose,
		},
	}, nil
}
