package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/ErlanBelekov/taskboard/config"
	"github.com/ErlanBelekov/taskboard/internal/client/api"
	"github.com/ErlanBelekov/taskboard/internal/client/guard"
	"github.com/ErlanBelekov/taskboard/internal/client/session"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

// app holds what every subcommand needs. It is built once per invocation.
type app struct {
	client *api.Client
	store  *session.Store
	guard  *guard.Guard
	logger *slog.Logger
}

type rootConfig struct {
	verbose bool
}

// NewRootCmd creates the root command for the taskboard CLI.
func NewRootCmd() *cobra.Command {
	cfg := &rootConfig{}
	a := &app{}

	cmd := &cobra.Command{
		Use:          "taskboard",
		Short:        "Manage your tasks from the terminal",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd.ErrOrStderr(), cfg.verbose)
		},
	}

	cmd.PersistentFlags().BoolVarP(&cfg.verbose, "verbose", "v", false, "log debug output to stderr")

	cmd.AddCommand(newRegisterCmd(a))
	cmd.AddCommand(newLoginCmd(a))
	cmd.AddCommand(newLogoutCmd(a))
	cmd.AddCommand(newWhoamiCmd(a))
	cmd.AddCommand(newTasksCmd(a))

	return cmd
}

func (a *app) init(stderr io.Writer, verbose bool) error {
	cfg, err := config.LoadClient()
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(tint.NewHandler(stderr, &tint.Options{Level: level}))

	// The client reads the bearer token from the store, and the store
	// verifies tokens through the client.
	a.client = api.New(cfg.APIURL, cfg.Timeout, storeTokens{app: a})
	a.store = session.NewStore(session.NewFileTokenStore(cfg.TokenFile), a.client, a.logger)
	a.guard = guard.New(a.store, guard.WithPlaceholder(func() {
		fmt.Fprintln(stderr, "Checking session...")
	}))

	a.logger.Debug("client configured", "api_url", cfg.APIURL, "token_file", cfg.TokenFile)
	return nil
}

// protected restores the saved session and runs fn only for a signed-in user.
func (a *app) protected(ctx context.Context, fn func(ctx context.Context, user api.User) error) error {
	checked := make(chan error, 1)
	go func() { checked <- a.store.CheckAuth(ctx) }()

	err := a.guard.Run(ctx, fn)
	checkErr := <-checked

	if errors.Is(err, guard.ErrLoginRequired) && checkErr != nil {
		if errors.Is(checkErr, api.ErrUnavailable) {
			return checkErr
		}
		return fmt.Errorf("%w: saved session is no longer valid", guard.ErrLoginRequired)
	}
	return err
}

type storeTokens struct {
	app *app
}

func (s storeTokens) Token() string {
	if s.app.store == nil {
		return ""
	}
	return s.app.store.Token()
}
