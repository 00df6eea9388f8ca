package app

import (
	"context"
	"fmt"
	"sort"

	"github.com/roterski/basisgo/internal/build"
	"github.com/roterski/basisgo/internal/ctxlog"
	"github.com/roterski/basisgo/internal/docs"
	"github.com/roterski/basisgo/internal/nsfind"
	"github.com/roterski/basisgo/internal/profile"
	"github.com/roterski/basisgo/internal/resolve"
)

// Run loads the configuration, resolves the requested basis and dispatches
// the configured task.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "task", a.config.Task)

	model, err := a.loader.Load(ctx, a.config.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	a.logger.Debug("Configuration loaded.", "aliases", len(model.Aliases))

	if a.config.Task == "help" {
		fmt.Fprint(a.outW, docs.RenderTasks())
		fmt.Fprint(a.outW, docs.RenderAliases(model.Aliases))
		return nil
	}

	stack := profile.NewStack(a.config.Profiles...).Prepend(a.config.PrependProfiles...)
	basis, err := resolve.Resolve(ctx, model, resolve.Params{
		SeedAliases: a.config.Aliases,
		Profiles:    stack,
		Root:        a.config.Root,
	})
	if err != nil {
		return err
	}
	a.logger.Debug("Basis resolved.", "require", basis.Require)

	switch a.config.Task {
	case "basis":
		a.printBasis(basis)
	case "paths":
		for _, p := range basis.Paths {
			fmt.Fprintln(a.outW, p)
		}
	case "deps":
		a.printDeps(basis)
	case "ns":
		dirs, err := build.SourceDirs(basis, basis.Require)
		if err != nil {
			return err
		}
		namespaces, err := nsfind.Namespaces(ctx, dirs)
		if err != nil {
			return err
		}
		for _, ns := range namespaces {
			fmt.Fprintln(a.outW, ns)
		}
	case "jar":
		out, err := build.Jar(ctx, basis, a.config.Aliases[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(a.outW, out)
	case "uberjar":
		out, err := build.Uberjar(ctx, basis, a.config.Aliases[0], a.config.LibDir)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.outW, out)
	default:
		// NewConfig already rejected unknown tasks.
		return &resolve.ProgrammingError{Message: fmt.Sprintf("unhandled task %q", a.config.Task)}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// printBasis writes a plain-text summary of the resolved basis.
func (a *App) printBasis(basis *resolve.Basis) {
	fmt.Fprintf(a.outW, "requested: %v\n", basis.RequestedAliases)
	fmt.Fprintf(a.outW, "profiles:  %v\n", basis.Profiles.Names())
	fmt.Fprintf(a.outW, "require:   %v\n", basis.Require)
	if basis.Root != "" {
		fmt.Fprintf(a.outW, "root:      %s\n", basis.Root)
	}
	fmt.Fprintln(a.outW, "deps:")
	a.printDeps(basis)
	fmt.Fprintln(a.outW, "paths:")
	for _, p := range basis.Paths {
		fmt.Fprintf(a.outW, "  %s\n", p)
	}
}

// printDeps writes the merged dependency map in coordinate order.
func (a *App) printDeps(basis *resolve.Basis) {
	coords := make([]string, 0, len(basis.Deps))
	for coord := range basis.Deps {
		coords = append(coords, coord)
	}
	sort.Strings(coords)
	for _, coord := range coords {
		fmt.Fprintf(a.outW, "  %s %s\n", coord, basis.Deps[coord])
	}
}
