package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/ytlive/internal/models"
	"github.com/desertthunder/ytlive/internal/shared"
	"github.com/urfave/cli/v3"
)

// Resolve fetches one watch page and prints the requested manifest URL, or both as JSON with --format all.
func (r *Runner) Resolve(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	sourceURL := cmd.String("url")
	svc := r.manifestService(config)

	if strings.EqualFold(cmd.String("format"), "all") {
		manifests, err := svc.Manifests(ctx, sourceURL)
		if err != nil {
			return err
		}
		return r.writeJSON(manifests, true)
	}

	format, err := models.ParseFormat(cmd.String("format"))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidArgument, err)
	}

	r.logger.Debug("resolving manifest", "url", sourceURL, "format", format)

	manifest, err := svc.Manifest(ctx, sourceURL, format)
	if err != nil {
		return err
	}

	return r.writePlain("%s\n", manifest)
}
