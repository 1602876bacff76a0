package app

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/voglerr/eventplan/internal/assemble"
	"github.com/voglerr/eventplan/internal/awsident"
	"github.com/voglerr/eventplan/internal/config"
	"github.com/voglerr/eventplan/internal/ctxlog"
	"github.com/voglerr/eventplan/internal/outputs"
	"github.com/voglerr/eventplan/internal/render"
	"github.com/voglerr/eventplan/internal/resolve"
	"github.com/voglerr/eventplan/internal/validate"
)

// Run executes the plan pipeline: load, validate, assemble, project, render.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	pipeline, err := a.loader.Load(ctx, a.cfg.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load pipeline definition: %w", err)
	}
	a.logger.Debug("Pipeline definition loaded.", "pipeline", pipeline.Name)

	if errs := validate.Validate(pipeline); len(errs) > 0 {
		for _, fe := range errs {
			a.logger.Error("Invalid configuration.", "field", fe.Field, "reason", fe.Message)
		}
		return errs
	}
	a.logger.Info("Configuration valid.", "pipeline", pipeline.Name)

	if a.cfg.ValidateOnly {
		fmt.Fprintf(a.outW, "pipeline %q: configuration valid\n", pipeline.Name)
		return nil
	}

	ident, err := a.identity(ctx)
	if err != nil {
		return err
	}

	codeHash, err := a.lambdaCodeHash(ctx, pipeline)
	if err != nil {
		return err
	}

	graph, err := assemble.Build(pipeline, ident, codeHash)
	if err != nil {
		return fmt.Errorf("failed to assemble resource graph: %w", err)
	}
	a.logger.Info("Resource graph assembled.", "resources", graph.Len())

	outs := outputs.Project(pipeline, graph, ident)

	plan := render.NewPlan(pipeline, graph, outs)
	if err := plan.Encode(a.outW, a.cfg.Format); err != nil {
		return fmt.Errorf("failed to encode plan: %w", err)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// identity produces the cloud identity context: flags when given, one STS
// lookup when --resolve-identity was requested.
func (a *App) identity(ctx context.Context) (resolve.Identity, error) {
	ident := a.cfg.Identity
	if a.cfg.ResolveIdentity {
		resolved, err := awsident.Resolve(ctx)
		if err != nil {
			return resolve.Identity{}, err
		}
		ident = resolved
	}

	if ident.AccountID == "" || ident.Region == "" {
		return resolve.Identity{}, errors.New("account and region are required: pass --account and --region, or --resolve-identity")
	}
	if ident.Partition == "" {
		ident.Partition = "aws"
	}
	return ident, nil
}

// lambdaCodeHash computes the content hash of the consumer's code archive
// for change detection. An archive that does not exist yet is not an error;
// the hash is simply absent from the plan.
func (a *App) lambdaCodeHash(ctx context.Context, p *config.Pipeline) (string, error) {
	if !p.CreateLambda || p.Lambda.Code == nil {
		return "", nil
	}

	data, err := os.ReadFile(*p.Lambda.Code)
	if errors.Is(err, fs.ErrNotExist) {
		ctxlog.FromContext(ctx).Debug("Code archive not present, omitting content hash.", "code", *p.Lambda.Code)
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read code archive: %w", err)
	}

	sum := sha256.Sum256(data)
	return base64.StdEncoding.EncodeToString(sum[:]), nil
}
