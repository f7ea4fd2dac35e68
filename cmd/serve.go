package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/ytlive/internal/models"
	"github.com/desertthunder/ytlive/internal/repositories"
	"github.com/desertthunder/ytlive/internal/server"
	"github.com/desertthunder/ytlive/internal/shared"
	"github.com/urfave/cli/v3"
)

// Serve starts the HTTP front end and blocks until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	if cmd.IsSet("port") {
		config.Server.Port = int(cmd.Int("port"))
	}
	if err := config.Validate(); err != nil {
		return err
	}

	// Startup finishes even when shutdown was requested early; the server then stops right away.
	startCtx := context.WithoutCancel(ctx)

	var db *sql.DB
	if config.NeedsDatabase() {
		if db, err = r.openDatabase(startCtx, config); err != nil {
			return err
		}
		defer db.Close()
	}

	registry, err := repositories.NewRegistry(config.Registry.Backend, db)
	if err != nil {
		return err
	}

	var auth models.Authenticator
	if config.Auth.Enabled {
		users := repositories.NewUserRepository(db)
		if existing, err := users.List(startCtx); err == nil && len(existing) == 0 {
			r.logger.Warn("login is enabled but no users exist; create one with `ytlive user add`")
		}
		auth = users
	}

	sessions := server.NewSessions(config.Auth, db)
	defer sessions.Close()

	app := server.NewApp(server.AppOpts{
		Registry: registry,
		Resolver: r.manifestService(config),
		Auth:     auth,
		Sessions: sessions,
		Logger:   r.logger,
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	r.logger.Info("starting server",
		"addr", config.Server.Addr(), "registry", config.Registry.Backend, "auth", config.Auth.Enabled)

	if cmd.Bool("open") {
		panel := fmt.Sprintf("http://%s/", config.Server.Addr())
		if err := shared.OpenBrowser(panel); err != nil {
			r.logger.Warn("failed to open browser", "error", err)
		}
	}

	srv := server.NewServer(config.Server.Addr(), app.Routes(), r.logger, config.Server.ShutdownTimeout)
	return srv.Run(ctx)
}
