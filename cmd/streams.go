package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/ytlive/internal/formatter"
	"github.com/desertthunder/ytlive/internal/models"
	"github.com/desertthunder/ytlive/internal/repositories"
	"github.com/desertthunder/ytlive/internal/server"
	"github.com/desertthunder/ytlive/internal/shared"
	"github.com/desertthunder/ytlive/internal/ui"
	"github.com/urfave/cli/v3"
)

// StreamsAdd registers a watch page in the database.
func (r *Runner) StreamsAdd(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	entry := &models.StreamEntry{
		Name: strings.TrimSpace(cmd.String("name")),
		URL:  strings.TrimSpace(cmd.String("url")),
	}
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
	}
	if entry.Name == "" {
		entry.Name = server.DefaultName(entry.URL)
	}

	db, err := r.openDatabase(ctx, config)
	if err != nil {
		return err
	}
	defer db.Close()

	added, err := repositories.NewStreamRepository(db).Add(ctx, entry.Name, entry.URL)
	if err != nil {
		return err
	}

	r.logger.Info("stream registered", "id", added.ID, "name", added.Name)
	if err := r.writePlain("%s\n", ui.Success(fmt.Sprintf("Registered %s as #%d", added.Name, added.ID))); err != nil {
		return err
	}
	return r.writePlain("  /stream/%d/master.m3u8\n  /hls/%s.m3u8\n", added.ID, added.Name)
}

// StreamsList prints the durable registry.
func (r *Runner) StreamsList(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	db, err := r.openDatabase(ctx, config)
	if err != nil {
		return err
	}
	defer db.Close()

	entries, err := repositories.NewStreamRepository(db).List(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(entries, cmd.Bool("pretty"))
	}
	if len(entries) == 0 {
		return r.writePlain("%s\n", ui.Warning("No streams registered"))
	}
	return r.writePlain("%s\n", ui.StreamTable(entries))
}

// StreamsExport writes the durable registry to a file, or stdout with --output -.
func (r *Runner) StreamsExport(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	baseURL := cmd.String("base-url")
	if baseURL == "" {
		baseURL = "http://" + config.Server.Addr()
	}

	db, err := r.openDatabase(ctx, config)
	if err != nil {
		return err
	}
	defer db.Close()

	entries, err := repositories.NewStreamRepository(db).List(ctx)
	if err != nil {
		return err
	}

	format := cmd.String("format")
	if cmd.String("output") == "-" {
		data, err := formatter.Export(entries, format, baseURL)
		if err != nil {
			return err
		}
		return r.writePlain("%s", data)
	}

	path, err := formatter.WriteExport(entries, format, baseURL, cmd.String("output"))
	if err != nil {
		return err
	}

	r.logger.Info("streams exported", "path", path, "format", format, "count", len(entries))
	return r.writePlain("%s\n", ui.Success(fmt.Sprintf("Exported %d streams to %s", len(entries), path)))
}
