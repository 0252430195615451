package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"launchpad/internal/app"
	"launchpad/internal/config"
	"launchpad/internal/logging"
	"launchpad/internal/persist"
	"launchpad/internal/state"
	"launchpad/internal/web"
	"launchpad/internal/workflow"
)

type cli struct {
	v   *viper.Viper
	cfg config.Config
}

// flagKeys maps persistent flags onto config keys.
var flagKeys = map[string]string{
	"session":    "session.id",
	"storage":    "storage.backend",
	"db-path":    "storage.path",
	"redis-addr": "storage.redis_addr",
	"log-file":   "log.path",
	"log-level":  "log.level",
	"network":    "network.name",
}

func setupFlags(cmd *cobra.Command, v *viper.Viper) error {
	flags := cmd.PersistentFlags()
	flags.String("config", "", "Path to a TOML config file.")
	flags.String("session", "default", "Session id to resume.")
	flags.String("storage", config.BackendSQLite, "Where progress is kept: memory, sqlite or redis.")
	flags.String("db-path", "", "SQLite database path.")
	flags.String("redis-addr", "", "Redis host:port.")
	flags.String("log-file", "", "Write JSON logs to this file.")
	flags.String("log-level", "info", "Log level.")
	flags.String("network", "", "Network name used in instructions and deposit checks.")
	for name, key := range flagKeys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return err
		}
	}
	return nil
}

func (c *cli) setupConfig(cmd *cobra.Command, args []string) error {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	cfg, err := config.Load(c.v, path)
	if err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New()}

	root := &cobra.Command{
		Use:               "launchpad",
		Short:             "Step-by-step Ethereum validator setup",
		SilenceUsage:      true,
		PersistentPreRunE: c.setupConfig,
		RunE:              c.run,
	}
	if err := setupFlags(root, c.v); err != nil {
		panic(err)
	}
	root.Flags().String("route", "", "Open the wizard at this page, e.g. /generate-keys.")
	root.Flags().Bool("fresh", false, "Start a new session with a generated id.")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve the wizard over HTTP",
		RunE:  c.runServe,
	}
	serve.Flags().String("addr", "", "Listen address.")
	if err := c.v.BindPFlag("serve.addr", serve.Flags().Lookup("addr")); err != nil {
		panic(err)
	}

	root.AddCommand(
		&cobra.Command{Use: "status", Short: "Show the saved progress of a session", RunE: c.runStatus},
		&cobra.Command{Use: "reset", Short: "Forget the saved progress of a session", RunE: c.runReset},
		serve,
	)
	return root
}

// openSession builds a store and attaches the configured backend. A backend
// that cannot be opened is logged and the session runs in memory.
func (c *cli) openSession(ctx context.Context, sessionID string, log *zap.Logger) (*state.Store, func(), error) {
	store := state.New(state.Initial())
	backend, err := persist.Open(ctx, c.cfg.Storage)
	if err != nil {
		log.Warn("storage unavailable, progress will not be saved",
			zap.String("backend", c.cfg.Storage.Backend), zap.Error(err))
		return store, func() {}, nil
	}
	detach, err := persist.Attach(ctx, store, backend, sessionID, log)
	if err != nil {
		backend.Close()
		return nil, nil, err
	}
	return store, func() {
		detach()
		if err := backend.Close(); err != nil {
			log.Warn("close storage", zap.Error(err))
		}
	}, nil
}

func normalizeRoute(r string) workflow.Route {
	r = strings.TrimSpace(r)
	if r == "" {
		return ""
	}
	if !strings.HasPrefix(r, "/") {
		r = "/" + r
	}
	return workflow.Route(r)
}

func (c *cli) run(cmd *cobra.Command, args []string) error {
	log, err := logging.New(c.cfg.Log.Path, c.cfg.Log.Level)
	if err != nil {
		return err
	}
	defer log.Sync()

	if err := app.ValidatePages(); err != nil {
		return errors.Wrap(err, "page registry")
	}
	if err := validateInstructionTemplates(); err != nil {
		return errors.Wrap(err, "instruction templates")
	}

	sessionID := c.cfg.Session.ID
	if fresh, _ := cmd.Flags().GetBool("fresh"); fresh {
		sessionID = persist.NewSessionID()
	}
	route, _ := cmd.Flags().GetString("route")

	store, closeSession, err := c.openSession(cmd.Context(), sessionID, log)
	if err != nil {
		return err
	}
	defer closeSession()

	log.Info("wizard started", zap.String("session", sessionID), zap.Stringer("progress", store.WorkflowStep()))
	m := app.NewModel(app.Options{
		Store:    store,
		Services: newRuntimeServices(c.cfg.Network),
		Logger:   log,
		Route:    normalizeRoute(route),
	})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return err
	}
	if sessionID != c.cfg.Session.ID {
		fmt.Fprintf(cmd.OutOrStdout(), "session %s saved; resume with --session %s\n", sessionID, sessionID)
	}
	return nil
}

func (c *cli) runReset(cmd *cobra.Command, args []string) error {
	backend, err := persist.Open(cmd.Context(), c.cfg.Storage)
	if err != nil {
		return err
	}
	defer backend.Close()
	if err := backend.Delete(cmd.Context(), c.cfg.Session.ID); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "session %s reset\n", c.cfg.Session.ID)
	return nil
}

func (c *cli) runServe(cmd *cobra.Command, args []string) error {
	newLogger := logging.New
	if c.cfg.Log.Path == "" {
		newLogger = func(_, level string) (*zap.Logger, error) { return logging.NewStderr(level) }
	}
	log, err := newLogger(c.cfg.Log.Path, c.cfg.Log.Level)
	if err != nil {
		return err
	}
	defer log.Sync()

	opts, err := depositOptions(c.cfg.Network)
	if err != nil {
		return err
	}
	store, closeSession, err := c.openSession(cmd.Context(), c.cfg.Session.ID, log)
	if err != nil {
		return err
	}
	defer closeSession()

	srv := web.NewServer(c.cfg.Serve.Addr, store, opts, log)
	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errc:
		return err
	case <-sigc:
	}
	return srv.Stop()
}
