package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/ytlive/internal/repositories"
	"github.com/desertthunder/ytlive/internal/ui"
	"github.com/urfave/cli/v3"
)

// UserAdd creates a login credential.
func (r *Runner) UserAdd(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	db, err := r.openDatabase(ctx, config)
	if err != nil {
		return err
	}
	defer db.Close()

	user, err := repositories.NewUserRepository(db).Create(ctx, cmd.String("username"), cmd.String("password"))
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	r.logger.Info("user created", "id", user.ID, "username", user.Username)
	return r.writePlain("%s\n", ui.Success(fmt.Sprintf("User %s created", user.Username)))
}

// UserList prints every login account.
func (r *Runner) UserList(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	db, err := r.openDatabase(ctx, config)
	if err != nil {
		return err
	}
	defer db.Close()

	users, err := repositories.NewUserRepository(db).List(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(users, false)
	}
	return r.writePlain("%s\n", ui.UserTable(users))
}
