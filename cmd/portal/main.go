package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"formativa-portal/internal/api"
	"formativa-portal/internal/app"
	"formativa-portal/internal/config"
	"formativa-portal/internal/logger"
	"formativa-portal/internal/model"
	"formativa-portal/internal/session"
	"formativa-portal/internal/store"
)

func main() {
	slog.SetDefault(slog.New(logger.NewHandler(os.Stdout, slog.LevelInfo)))

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "portal",
		Short:         "Cliente do portal da Escola Formativa",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(serveCmd(), loginCmd(), logoutCmd(), whoamiCmd())
	return root
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve a interface web do portal",
		RunE: func(_ *cobra.Command, _ []string) error {
			application, err := app.New()
			if err != nil {
				return err
			}
			return application.Run()
		},
	}
}

// newManager builds the session stack the same way the web app does, so
// the CLI and the served UI share one persisted session.
func newManager() (*session.Manager, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	st, err := store.New(cfg.StateDir)
	if err != nil {
		return nil, err
	}

	client := api.New(cfg.APIBaseURL, cfg.HTTPTimeout)
	return session.NewManager(st, client, cfg.LoginRateLimitRPM), nil
}

func loginCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Autentica no portal e guarda a sessão",
		RunE: func(cmd *cobra.Command, _ []string) error {
			manager, err := newManager()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			manager.Initialize(ctx)

			if !manager.Login(ctx, username, password) {
				return fmt.Errorf("%w: %s", model.ErrLoginFailed, manager.Snapshot().LastError)
			}

			snap := manager.Snapshot()
			fmt.Fprintf(cmd.OutOrStdout(), "Sessão iniciada como %s (%s)\n", snap.User.Username, snap.User.Role.Label())
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "nome de usuário")
	cmd.Flags().StringVarP(&password, "password", "p", "", "senha")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Encerra a sessão guardada",
		RunE: func(cmd *cobra.Command, _ []string) error {
			manager, err := newManager()
			if err != nil {
				return err
			}

			manager.Logout()
			fmt.Fprintln(cmd.OutOrStdout(), "Sessão encerrada.")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Mostra o usuário da sessão atual",
		RunE: func(cmd *cobra.Command, _ []string) error {
			manager, err := newManager()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			manager.Initialize(ctx)

			snap := manager.Snapshot()
			if !snap.Authenticated() || snap.User == nil {
				return model.ErrNotAuthenticated
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) NI %d\n", snap.User.FullName(), snap.User.Role.Label(), snap.User.NI)
			return nil
		},
	}
}
