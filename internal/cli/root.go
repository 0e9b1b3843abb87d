// Package cli wires configuration, storage and the workspace channel into
// the codepad commands.
package cli

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jask/codepad/internal/catalog"
	"github.com/jask/codepad/internal/channel"
	"github.com/jask/codepad/internal/config"
	"github.com/jask/codepad/internal/database"
	"github.com/jask/codepad/internal/database/repository"
	"github.com/jask/codepad/internal/logging"
	"github.com/jask/codepad/internal/secrets"
	"github.com/jask/codepad/internal/tui"
	"github.com/jask/codepad/internal/workspace"
)

func Execute() error {
	return NewRoot().Execute()
}

var runProgram = func(m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// env is what every command needs once config is read.
type env struct {
	cfg config.Config
	log *logging.Logger
	db  *sql.DB
}

// openEnv loads config, opens the logger and prepares the database.
// Logs without a configured directory go to fallback.
func openEnv(ctx context.Context, fallback io.Writer) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(logging.Config{Level: cfg.Log.Level, Dir: cfg.Log.Dir, Service: "codepad", Fallback: fallback})
	if err != nil {
		return nil, err
	}
	db, err := database.Setup(cfg.Database.Path)
	if err != nil {
		_ = logger.Close()
		return nil, err
	}
	if err := database.SeedDefaults(ctx, db); err != nil {
		_ = db.Close()
		_ = logger.Close()
		return nil, fmt.Errorf("seed defaults: %w", err)
	}
	logger.Debug("environment ready", "db", cfg.Database.Path)
	return &env{cfg: cfg, log: logger, db: db}, nil
}

func (e *env) Close() {
	_ = e.db.Close()
	_ = e.log.Close()
}

// sessionToken prefers the configured token and otherwise reuses the one
// minted for this server on an earlier run.
func sessionToken(cfg config.Config) (string, error) {
	if cfg.Server.Token != "" {
		return cfg.Server.Token, nil
	}
	store, err := tokenStore()
	if err != nil {
		return "", err
	}
	return store.Ensure(cfg.Server.URL)
}

// tokenStore keeps minted tokens next to the config file.
func tokenStore() (*secrets.Store, error) {
	return secrets.Open(filepath.Dir(config.Path()))
}

// routeArg turns the optional positional argument into a route. Bare ids
// are accepted as well as paths.
func routeArg(args []string) workspace.Route {
	if len(args) == 0 {
		return workspace.NewDocumentRoute()
	}
	raw := strings.TrimSpace(args[0])
	if !strings.HasPrefix(raw, "/") {
		raw = "/" + raw
	}
	return workspace.ParseRoute(raw)
}

func NewRoot() *cobra.Command {
	var configPath string
	root := &cobra.Command{
		Use:          "codepad [revision-id]",
		Short:        "Terminal code playground backed by a workspace server",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				return os.Setenv("CODEPAD_CONFIG", configPath)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			e, err := openEnv(ctx, io.Discard)
			if err != nil {
				return err
			}
			defer e.Close()

			token, err := sessionToken(e.cfg)
			if err != nil {
				return err
			}
			client := channel.New(e.cfg.Server.URL, token, e.log.Logger)
			go client.Run(ctx)

			packages := catalog.New(repository.NewPackageRepo(e.db))
			go packages.Watch(ctx, catalog.WatchInterval)

			cfg := e.cfg
			deps := tui.Deps{
				Revisions: repository.NewRevisionRepo(e.db),
				Channel:   client,
				Packages:  packages,
				SaveSettings: func(ed config.Editor) error {
					cfg.Editor = ed
					return config.Save(cfg)
				},
				Log: e.log.Logger,
			}
			route := routeArg(args)
			e.log.Info("session start", "route", route.String())
			return runProgram(tui.NewModel(ctx, deps, token, cfg.Editor, route))
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/codepad/config.toml)")
	root.AddCommand(revisionsCmd(), packagesCmd(), tokenCmd())
	return root
}
