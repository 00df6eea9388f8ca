package resolve

import (
	"context"

	"github.com/roterski/basisgo/internal/config"
	"github.com/roterski/basisgo/internal/ctxlog"
	"github.com/roterski/basisgo/internal/profile"
	"github.com/zclconf/go-cty/cty"
)

// Params carries everything one resolution needs. The engine never reads
// ambient process state; whatever the invoking tool wants to influence the
// result with has to arrive here.
type Params struct {
	// SeedAliases is the requested seed set, in order. Duplicates are
	// dropped after their first occurrence.
	SeedAliases []string
	// Profiles is the active profile stack.
	Profiles profile.Stack
	// Root is an optional project root carried through to the basis.
	Root string
}

// Basis is the result of one resolution. It is immutable once returned;
// derived bases (see WithAliasKeys) are new values and never touch the
// original.
type Basis struct {
	// RequestedAliases is the deduplicated seed set in request order.
	RequestedAliases []string
	// Require is the transitive closure in post-order: every alias appears
	// once, after everything it requires. Build backends concatenate
	// per-alias settings in exactly this order.
	Require []string
	// Aliases maps every id in the configuration to its original,
	// unresolved definition, retained for inspection by callers such as
	// the documentation printer.
	Aliases map[string]*config.Alias
	// Deps is the merged dependency map of the closure; on coordinate
	// collision the alias later in Require wins.
	Deps map[string]string
	// Paths is the union of the closure's extra paths, sorted and
	// deduplicated. Callers must not read build ordering into it.
	Paths []string
	// Profiles is the profile stack the resolution ran under.
	Profiles profile.Stack
	// Root is the project root given at resolution time, possibly replaced
	// by a target alias's own root via WithAliasKeys.
	Root string
	// Keys holds alias-declared keys materialized onto the basis by
	// WithAliasKeys. Nil until a caller merges an alias.
	Keys map[string]cty.Value
}

// Resolve computes the basis for the given parameters against the loaded
// configuration model. It fails without a partial result on a missing
// alias, a profile mismatch, or a require-cycle; retrying with unchanged
// input cannot succeed, so callers should surface the error and stop.
func Resolve(ctx context.Context, model *config.Model, params Params) (*Basis, error) {
	logger := ctxlog.FromContext(ctx)

	seeds := dedup(params.SeedAliases)
	logger.Debug("Resolution started.",
		"seeds", seeds,
		"profiles", params.Profiles.Names(),
	)

	order, err := closureOrder(seeds, model.Aliases, params.Profiles)
	if err != nil {
		return nil, err
	}
	logger.Debug("Closure computed.", "order", order)

	deps, paths := mergeContributions(order, model.Aliases)
	logger.Debug("Contributions merged.", "dep_count", len(deps), "path_count", len(paths))

	return &Basis{
		RequestedAliases: seeds,
		Require:          order,
		Aliases:          model.Aliases,
		Deps:             deps,
		Paths:            paths,
		Profiles:         params.Profiles,
		Root:             params.Root,
	}, nil
}

// dedup drops repeated ids, keeping first-occurrence order.
func dedup(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
